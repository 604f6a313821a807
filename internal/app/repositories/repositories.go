package repositories

import (
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// Collection names in the record store
const (
	CollectionStudents      = "students"
	CollectionCompanies     = "companies"
	CollectionApplications  = "applications"
	CollectionNotifications = "notifications"
	CollectionAdvice        = "advice"
	CollectionCounters      = "counters"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	CompanyRepository      *CompanyRepository
	ApplicationRepository  *ApplicationRepository
	NotificationRepository *NotificationRepository
	AdviceRepository       *AdviceRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store *recordstore.Store) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(store),
		CompanyRepository:      NewCompanyRepository(store),
		ApplicationRepository:  NewApplicationRepository(store),
		NotificationRepository: NewNotificationRepository(store),
		AdviceRepository:       NewAdviceRepository(store),
	}
}
