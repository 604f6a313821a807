package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/controllers"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/middleware"
	"github.com/unizg/careerhub/internal/pkg/websocket"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Student      *controllers.StudentController
	Company      *controllers.CompanyController
	Application  *controllers.ApplicationController
	Notification *controllers.NotificationController
	Advice       *controllers.AdviceController
	Chat         *controllers.ChatController
	Content      *controllers.ContentController
	WebSocket    *websocket.Handler
}

// ChatLimit configures rate limiting of the language model endpoints
type ChatLimit struct {
	Limiter middleware.Limiter
	Limit   int
	Window  time.Duration
}

// SetupRouter configures all application routes. Paths are kept flat because
// the web client calls them without a version prefix.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware, chatLimit ChatLimit) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "CareerHub API is running"})
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	router.POST("/register", c.Auth.RegisterStudent)
	router.POST("/login", c.Auth.LoginStudent)
	router.POST("/register_company", c.Auth.RegisterCompany)
	router.POST("/login_company", c.Auth.LoginCompany)

	router.GET("/events", c.Content.Events)
	router.GET("/mentorships", c.Content.Mentorships)
	router.GET("/careers", c.Content.Careers)
	router.GET("/connect_data", c.Content.ConnectData)
	router.GET("/profile_file/:filename", c.Content.ProfileFile)
	router.GET("/all_company_jobs", c.Company.AllCompanyJobs)

	router.GET("/savjeti", c.Advice.List)
	router.POST("/savjeti", c.Advice.Create)
	router.POST("/savjeti/reply", c.Advice.Reply)

	limited := router.Group("")
	limited.Use(middleware.RateLimit(chatLimit.Limiter, chatLimit.Limit, chatLimit.Window))
	{
		limited.POST("/chat", c.Chat.Chat)
		limited.POST("/career_suggestion", c.Chat.CareerSuggestion)
	}

	// --- Any signed-in account ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/students", c.Student.SearchStudents)
		authenticated.GET("/student_public/:username", c.Student.GetPublicProfile)
	}

	// --- Student routes ---
	student := authenticated.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/student/:username", c.Student.GetProfile)
		student.POST("/update_profile", c.Student.UpdateProfile)
		student.POST("/upload_profile", c.Student.UploadProfile)
		student.POST("/delete_profile_image", c.Student.DeleteProfileImage)
		student.POST("/delete_cv", c.Student.DeleteCV)
		student.POST("/register_event", c.Student.RegisterEvent)
		student.POST("/unregister_event", c.Student.UnregisterEvent)
		student.POST("/add_meeting", c.Student.AddMeeting)
		student.POST("/delete_meeting", c.Student.DeleteMeeting)
		student.POST("/add_connection", c.Student.AddConnection)
		student.POST("/remove_connection", c.Student.RemoveConnection)

		student.POST("/apply", c.Application.Apply)
		student.GET("/applications/:username", c.Application.ListForStudent)
		student.POST("/withdraw_application", c.Application.Withdraw)

		student.GET("/get_notifications", c.Notification.List)
		student.POST("/mark_notifications_read", c.Notification.MarkAllRead)
		student.GET("/ws/notifications", c.WebSocket.HandleConnection)
	}

	// --- Company routes ---
	company := authenticated.Group("")
	company.Use(authMiddleware.RoleRequired(models.RoleCompany))
	{
		company.GET("/company/jobs", c.Company.ListJobs)
		company.POST("/company/add_job", c.Company.AddJob)
		company.POST("/company/edit_job", c.Company.EditJob)
		company.POST("/company/update_profile", c.Company.UpdateProfile)
		company.GET("/company/events", c.Company.ListEvents)
		company.POST("/company/add_event", c.Company.AddEvent)
		company.POST("/company/delete_event", c.Company.DeleteEvent)
		company.GET("/company/stats", c.Company.Stats)
		company.GET("/company/applications", c.Company.ListApplications)
		company.POST("/update_application_status", c.Application.UpdateStatus)
	}
}
