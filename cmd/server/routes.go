package main

import (
	"github.com/gin-gonic/gin"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/interfaces/http/handlers"
	"menvo.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler            *handlers.AuthHandler
	lifecycleHandler       *handlers.LifecycleHandler
	profileHandler         *handlers.ProfileHandler
	availabilityHandler    *handlers.AvailabilityHandler
	mentorHandler          *handlers.MentorHandler
	appointmentHandler     *handlers.AppointmentHandler
	uploadHandler          *handlers.UploadHandler
	organizationHandler    *handlers.OrganizationHandler
	subscriptionHandler    *handlers.SubscriptionHandler
	quizHandler            *handlers.QuizHandler
	adminHandler           *handlers.AdminHandler
	authMiddleware         gin.HandlerFunc
	optionalAuthMiddleware gin.HandlerFunc
	lifecycleResolver      middleware.LifecycleResolver
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	// Mentors may manage availability while their verification is pending
	mentorReady := middleware.RequireLifecycle(d.lifecycleResolver, entities.StageReady, entities.StageNeedsVerification)
	ready := middleware.RequireLifecycle(d.lifecycleResolver, entities.StageReady)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/role", d.authMiddleware, d.authHandler.SelectRole)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
		}

		v1.GET("/me/lifecycle", d.authMiddleware, d.lifecycleHandler.Get)

		// Public marketplace
		mentors := v1.Group("/mentors")
		{
			mentors.GET("", d.mentorHandler.Search)
			mentors.GET("/:id", d.mentorHandler.Get)
			mentors.GET("/:id/slots", d.mentorHandler.Slots)
		}

		v1.POST("/newsletter", d.subscriptionHandler.Newsletter)
		v1.POST("/waiting-list", d.subscriptionHandler.WaitingList)

		quiz := v1.Group("/quiz")
		quiz.Use(d.optionalAuthMiddleware)
		{
			quiz.POST("/submissions", d.quizHandler.Submit)
			quiz.GET("/submissions/:id", d.quizHandler.Get)
		}

		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware, middleware.RequirePermission(entities.PermProfileManage))
		{
			profile.GET("", d.profileHandler.Get)
			profile.POST("/complete", d.profileHandler.Complete)
			profile.PATCH("", d.profileHandler.Update)
		}

		availability := v1.Group("/availability")
		availability.Use(d.authMiddleware, middleware.RequirePermission(entities.PermAvailabilityManage))
		{
			availability.GET("", d.availabilityHandler.List)
			availability.POST("", mentorReady, d.availabilityHandler.Create)
			availability.PUT("/:id", mentorReady, d.availabilityHandler.Update)
			availability.DELETE("/:id", mentorReady, d.availabilityHandler.Delete)
		}

		appointments := v1.Group("/appointments")
		appointments.Use(d.authMiddleware)
		{
			appointments.POST("",
				middleware.RequirePermission(entities.PermAppointmentBook),
				ready,
				middleware.IdempotencyMiddleware(),
				d.appointmentHandler.Book,
			)
			appointments.GET("", middleware.RequirePermission(entities.PermAppointmentView), d.appointmentHandler.List)
			appointments.GET("/:id", middleware.RequirePermission(entities.PermAppointmentView), d.appointmentHandler.Get)
			appointments.PUT("/:id/status", middleware.RequirePermission(entities.PermAppointmentView), d.appointmentHandler.UpdateStatus)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(d.authMiddleware, middleware.RequirePermission(entities.PermDocumentUpload))
		{
			uploads.POST("/:kind", d.uploadHandler.Upload)
			uploads.GET("", d.uploadHandler.List)
		}

		organizations := v1.Group("/organizations")
		{
			organizations.GET("", d.organizationHandler.List)
			organizations.GET("/:id", d.optionalAuthMiddleware, d.organizationHandler.Get)
			organizations.POST("",
				d.authMiddleware,
				middleware.RequirePermission(entities.PermOrganizationCreate),
				ready,
				d.organizationHandler.Create,
			)
			organizations.POST("/:id/members",
				d.authMiddleware,
				middleware.RequirePermission(entities.PermOrganizationManage),
				d.organizationHandler.AddMember,
			)
		}

		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/role", d.adminHandler.AssignRole)
			admin.GET("/verifications", d.adminHandler.ListPendingVerifications)
			admin.PUT("/mentors/:id/verify", d.adminHandler.VerifyMentor)
			admin.DELETE("/mentors/:id/verify", d.adminHandler.RevokeVerification)
			admin.GET("/appointments", d.adminHandler.ListAppointments)
			admin.GET("/stats", d.adminHandler.Stats)
			admin.PUT("/organizations/:id/status", d.organizationHandler.UpdateStatus)
			admin.GET("/subscribers", d.adminHandler.ListSubscribers)
		}
	}
}
