package models

import "time"

// Job is a position posted by a company. IDs are unique per company only.
type Job struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Pay         string     `json:"pay,omitempty"`
	PostedAt    time.Time  `json:"posted_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CompanyEvent is an event announced by a company
type CompanyEvent struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Company is a registered employer account
type Company struct {
	Username       string         `json:"username"`
	CompanyName    string         `json:"company_name"`
	Industry       string         `json:"industry"`
	About          string         `json:"about"`
	Website        string         `json:"website"`
	ContactEmail   string         `json:"contact_email"`
	Logo           *string        `json:"logo"`
	JobsPosted     []Job          `json:"jobs_posted"`
	Events         []CompanyEvent `json:"events"`
	HashedPassword string         `json:"hashed_password"`
	CreatedAt      time.Time      `json:"created_at"`
}

// CompanyProfile is the password-free view of a Company
type CompanyProfile struct {
	Username     string         `json:"username"`
	CompanyName  string         `json:"company_name"`
	Industry     string         `json:"industry"`
	About        string         `json:"about"`
	Website      string         `json:"website"`
	ContactEmail string         `json:"contact_email"`
	Logo         *string        `json:"logo"`
	JobsPosted   []Job          `json:"jobs_posted"`
	Events       []CompanyEvent `json:"events"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewCompany creates a company with empty job and event lists
func NewCompany(username, companyName, industry, hashedPassword string) *Company {
	return &Company{
		Username:       username,
		CompanyName:    companyName,
		Industry:       industry,
		JobsPosted:     []Job{},
		Events:         []CompanyEvent{},
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
}

// Normalize replaces nil collections left by older records
func (c *Company) Normalize() {
	if c.JobsPosted == nil {
		c.JobsPosted = []Job{}
	}
	if c.Events == nil {
		c.Events = []CompanyEvent{}
	}
}

// Public returns the projection without the password hash
func (c *Company) Public() *CompanyProfile {
	c.Normalize()
	return &CompanyProfile{
		Username:     c.Username,
		CompanyName:  c.CompanyName,
		Industry:     c.Industry,
		About:        c.About,
		Website:      c.Website,
		ContactEmail: c.ContactEmail,
		Logo:         c.Logo,
		JobsPosted:   append([]Job{}, c.JobsPosted...),
		Events:       append([]CompanyEvent{}, c.Events...),
		CreatedAt:    c.CreatedAt,
	}
}

// DisplayName is the company name, or the username when none was given
func (c *Company) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.Username
}

// FindJob returns the index of the job with id, or -1
func (c *Company) FindJob(id int) int {
	for i := range c.JobsPosted {
		if c.JobsPosted[i].ID == id {
			return i
		}
	}
	return -1
}

// NextEventID returns one more than the highest event id
func (c *Company) NextEventID() int {
	max := 0
	for _, e := range c.Events {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// ListedJob is a job enriched with its company for the public board
type ListedJob struct {
	JobID           int        `json:"job_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Pay             string     `json:"pay,omitempty"`
	PostedAt        time.Time  `json:"posted_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	CompanyName     string     `json:"company_name"`
	CompanyUsername string     `json:"company_username"`
	Industry        string     `json:"industry"`
	Logo            *string    `json:"logo"`
}
