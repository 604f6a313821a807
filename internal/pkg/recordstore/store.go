// Package recordstore persists named collections of records as whole JSON
// documents on a pluggable backend.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrCollectionNotFound is returned by a Backend when a collection was never written
var ErrCollectionNotFound = errors.New("collection not found")

// Backend reads and writes raw collection documents
type Backend interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, data []byte) error
	Close() error
}

// Store loads and saves collections, serializing access per collection
type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over backend
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Load decodes collection into dst, which must be a pointer to a map or slice.
// A collection that does not exist yet is initialized empty and persisted.
func (s *Store) Load(ctx context.Context, collection string, dst interface{}) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.load(ctx, collection, dst)
}

// Save overwrites collection with src
func (s *Store) Save(ctx context.Context, collection string, src interface{}) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.save(ctx, collection, src)
}

// View loads collection into dst and calls fn while holding the collection lock
func (s *Store) View(ctx context.Context, collection string, dst interface{}, fn func() error) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	if err := s.load(ctx, collection, dst); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn()
}

// Update runs a load, mutate, save cycle on collection under its lock.
// If fn returns an error nothing is written.
func (s *Store) Update(ctx context.Context, collection string, dst interface{}, fn func() error) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	if err := s.load(ctx, collection, dst); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return s.save(ctx, collection, dst)
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) load(ctx context.Context, collection string, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("recordstore: destination for %q must be a non-nil pointer", collection)
	}

	data, err := s.backend.Read(ctx, collection)
	if errors.Is(err, ErrCollectionNotFound) {
		if err := initEmpty(rv.Elem()); err != nil {
			return fmt.Errorf("recordstore: %q: %w", collection, err)
		}
		return s.save(ctx, collection, dst)
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %q: %w", collection, err)
	}

	// reset so stale entries from a reused destination do not survive
	rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode collection %q: %w", collection, err)
	}
	if k := rv.Elem().Kind(); (k == reflect.Map || k == reflect.Slice) && rv.Elem().IsNil() {
		return initEmpty(rv.Elem())
	}
	return nil
}

func (s *Store) save(ctx context.Context, collection string, src interface{}) error {
	data, err := Encode(src)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", collection, err)
	}
	if err := s.backend.Write(ctx, collection, data); err != nil {
		return fmt.Errorf("failed to write collection %q: %w", collection, err)
	}
	return nil
}

func initEmpty(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Map:
		v.Set(reflect.MakeMap(v.Type()))
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	default:
		return fmt.Errorf("unsupported collection kind %s", v.Kind())
	}
	return nil
}

// Encode renders v as indented UTF-8 JSON without HTML escaping
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
