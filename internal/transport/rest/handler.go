package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"atelier/config"
	"atelier/internal/domain"
	"atelier/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		// Public booking surface; the widget talks to these without auth.
		api.GET("/availability", h.getAvailability)
		api.POST("/bookings", h.createBooking)

		stores := api.Group("/stores")
		{
			stores.GET("/by-slug/:slug", h.getStoreBySlug)

			admin := stores.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createStore)
				admin.GET("/", h.getStores)
				admin.GET("/:id", h.getStoreByID)
				admin.PUT("/:id", h.updateStore)
			}
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
			auth.POST("/register", h.authMiddleware(), h.adminMiddleware(), h.register)
		}

		users := api.Group("/users", h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.PUT("/me", h.updateCurrentUser)
			users.PUT("/me/password", h.updatePassword)
		}

		artists := api.Group("/artists")
		{
			artists.GET("/", h.getArtists)
			artists.GET("/:id", h.getArtistByID)

			staff := artists.Group("/", h.authMiddleware(), h.roleMiddleware(domain.UserRoleAdmin, domain.UserRoleManager))
			{
				staff.POST("/", h.createArtist)
				staff.PUT("/:id", h.updateArtist)
				staff.PUT("/:id/schedule", h.updateArtistSchedule)
				staff.DELETE("/:id", h.deleteArtist)

				staff.POST("/:id/photo", h.uploadArtistPhoto)
				staff.DELETE("/:id/photo", h.deleteArtistPhoto)

				staff.POST("/:id/services/:serviceId", h.addArtistService)
				staff.DELETE("/:id/services/:serviceId", h.removeArtistService)
			}
		}

		services := api.Group("/services")
		{
			services.GET("/", h.getServices)
			services.GET("/:id", h.getServiceByID)

			staff := services.Group("/", h.authMiddleware(), h.roleMiddleware(domain.UserRoleAdmin, domain.UserRoleManager))
			{
				staff.POST("/", h.createService)
				staff.PUT("/:id", h.updateService)
				staff.DELETE("/:id", h.deleteService)
			}
		}

		clients := api.Group("/clients", h.authMiddleware())
		{
			clients.GET("/", h.getClients)
			clients.GET("/:id", h.getClientByID)
			clients.GET("/:id/communications", h.getClientCommunications)

			staff := clients.Group("/", h.roleMiddleware(domain.UserRoleAdmin, domain.UserRoleManager))
			{
				staff.POST("/", h.createClient)
				staff.PUT("/:id", h.updateClient)
			}
		}

		appointments := api.Group("/appointments", h.authMiddleware())
		{
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.PUT("/:id/status", h.updateAppointmentStatus)
			appointments.DELETE("/:id", h.cancelAppointment)
		}

		calendars := api.Group("/calendars", h.authMiddleware(), h.roleMiddleware(domain.UserRoleAdmin, domain.UserRoleManager))
		{
			calendars.GET("/providers", h.getCalendarProviders)
			calendars.GET("/busy", h.getCalendarBusy)
			calendars.POST("/events", h.pushAppointmentToCalendar)
			calendars.DELETE("/events", h.removeCalendarEvent)
		}
	}
}
