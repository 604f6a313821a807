package models

import "time"

// Reply to an advice post
type Reply struct {
	Username string `json:"username"`
	Reply    string `json:"reply"`
}

// AdvicePost is a question in the advice forum
type AdvicePost struct {
	ID        int       `json:"id"`
	Question  string    `json:"question"`
	Tags      []string  `json:"tags"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}
