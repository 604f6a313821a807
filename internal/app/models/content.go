package models

// Event is a university event from the static catalog
type Event struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`
}

// Mentorship is an open or full mentorship slot
type Mentorship struct {
	ID     int    `json:"id" yaml:"id"`
	Mentor string `json:"mentor" yaml:"mentor"`
	Field  string `json:"field" yaml:"field"`
	Status string `json:"status" yaml:"status"`
}

// Career is a career path entry
type Career struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Skills      []string `json:"skills" yaml:"skills"`
}

// ConnectEntry is an organisation or contact students can reach out to
type ConnectEntry struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Contact     string `json:"contact" yaml:"contact"`
}

// Catalog holds the static content served by the public endpoints
type Catalog struct {
	Events      []Event        `json:"events" yaml:"events"`
	Mentorships []Mentorship   `json:"mentorships" yaml:"mentorships"`
	Careers     []Career       `json:"careers" yaml:"careers"`
	Connect     []ConnectEntry `json:"connect_data" yaml:"connect_data"`
}
