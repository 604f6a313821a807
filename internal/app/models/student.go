package models

import "time"

// Meeting is an entry in a student's personal agenda
type Meeting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Student is a registered student account
type Student struct {
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	University       string    `json:"university"`
	About            string    `json:"about"`
	ProfileImage     *string   `json:"profile_image"`
	CV               *string   `json:"cv"`
	Connections      []string  `json:"connections"`
	RegisteredEvents []int     `json:"registered_events"`
	Meetings         []Meeting `json:"meetings"`
	HashedPassword   string    `json:"hashed_password"`
	CreatedAt        time.Time `json:"created_at"`
}

// StudentProfile is the password-free view of a Student
type StudentProfile struct {
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	University       string    `json:"university"`
	About            string    `json:"about"`
	ProfileImage     *string   `json:"profile_image"`
	CV               *string   `json:"cv"`
	Connections      []string  `json:"connections"`
	RegisteredEvents []int     `json:"registered_events"`
	Meetings         []Meeting `json:"meetings"`
	CreatedAt        time.Time `json:"created_at"`
}

// StudentCard is what other users see of a student
type StudentCard struct {
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	University   string   `json:"university"`
	About        string   `json:"about"`
	ProfileImage *string  `json:"profile_image"`
	Connections  []string `json:"connections"`
}

// NewStudent creates a student with empty collections
func NewStudent(username, name, university, hashedPassword string) *Student {
	return &Student{
		Username:         username,
		Name:             name,
		University:       university,
		Connections:      []string{},
		RegisteredEvents: []int{},
		Meetings:         []Meeting{},
		HashedPassword:   hashedPassword,
		CreatedAt:        time.Now().UTC(),
	}
}

// Normalize replaces nil collections left by older records
func (s *Student) Normalize() {
	if s.Connections == nil {
		s.Connections = []string{}
	}
	if s.RegisteredEvents == nil {
		s.RegisteredEvents = []int{}
	}
	if s.Meetings == nil {
		s.Meetings = []Meeting{}
	}
}

// Public returns the projection safe to send to the owner
func (s *Student) Public() *StudentProfile {
	s.Normalize()
	return &StudentProfile{
		Username:         s.Username,
		Name:             s.Name,
		University:       s.University,
		About:            s.About,
		ProfileImage:     s.ProfileImage,
		CV:               s.CV,
		Connections:      append([]string{}, s.Connections...),
		RegisteredEvents: append([]int{}, s.RegisteredEvents...),
		Meetings:         append([]Meeting{}, s.Meetings...),
		CreatedAt:        s.CreatedAt,
	}
}

// Card returns the projection shown to other users
func (s *Student) Card() *StudentCard {
	s.Normalize()
	return &StudentCard{
		Username:     s.Username,
		Name:         s.Name,
		University:   s.University,
		About:        s.About,
		ProfileImage: s.ProfileImage,
		Connections:  append([]string{}, s.Connections...),
	}
}

// HasEvent reports whether the student registered for eventID
func (s *Student) HasEvent(eventID int) bool {
	for _, id := range s.RegisteredEvents {
		if id == eventID {
			return true
		}
	}
	return false
}

// HasConnection reports whether username is in the student's connections
func (s *Student) HasConnection(username string) bool {
	for _, u := range s.Connections {
		if u == username {
			return true
		}
	}
	return false
}
