package repositories

import (
	"context"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// AdviceRepository accesses the advice forum posts
type AdviceRepository struct {
	store *recordstore.Store
}

// NewAdviceRepository creates a new AdviceRepository
func NewAdviceRepository(store *recordstore.Store) *AdviceRepository {
	return &AdviceRepository{store: store}
}

// List returns all posts in creation order
func (r *AdviceRepository) List(ctx context.Context) ([]models.AdvicePost, error) {
	var posts []models.AdvicePost
	if err := r.store.Load(ctx, CollectionAdvice, &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		normalizePost(&posts[i])
	}
	return posts, nil
}

// Create assigns id = count+1 and appends post
func (r *AdviceRepository) Create(ctx context.Context, post *models.AdvicePost) error {
	var posts []models.AdvicePost
	return r.store.Update(ctx, CollectionAdvice, &posts, func() error {
		post.ID = len(posts) + 1
		normalizePost(post)
		posts = append(posts, *post)
		return nil
	})
}

// AddReply appends reply to the post with id
func (r *AdviceRepository) AddReply(ctx context.Context, postID int, reply models.Reply) (*models.AdvicePost, error) {
	var posts []models.AdvicePost
	var updated *models.AdvicePost
	err := r.store.Update(ctx, CollectionAdvice, &posts, func() error {
		for i := range posts {
			if posts[i].ID == postID {
				normalizePost(&posts[i])
				posts[i].Replies = append(posts[i].Replies, reply)
				p := posts[i]
				updated = &p
				return nil
			}
		}
		return apperrors.ErrPostNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func normalizePost(p *models.AdvicePost) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Replies == nil {
		p.Replies = []models.Reply{}
	}
}
