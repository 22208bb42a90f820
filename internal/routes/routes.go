package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/barberlink/booking-api/internal/audit"
	"github.com/barberlink/booking-api/internal/config"
	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/handlers"
	infraRepo "github.com/barberlink/booking-api/internal/infra/repository"
	"github.com/barberlink/booking-api/internal/middleware"
	"github.com/barberlink/booking-api/internal/notify"
	ucBooking "github.com/barberlink/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	providerRepo := infraRepo.NewProviderGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)
	shopRepo := infraRepo.NewShopGormRepository(db)
	customerRepo := infraRepo.NewCustomerGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var publisher domain.EventPublisher = notify.NopPublisher{}
	if cfg.RedisAddr != "" {
		publisher = notify.NewRedisPublisher(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}))
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		providerRepo,
		serviceRepo,
		shopRepo,
		customerRepo,
		publisher,
		auditDispatcher,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, shopRepo, publisher, auditDispatcher)
	startBookingUC := ucBooking.NewStartBooking(bookingRepo, shopRepo, publisher, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, shopRepo, publisher, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, shopRepo, publisher, auditDispatcher)
	markNoShowUC := ucBooking.NewMarkNoShow(bookingRepo, shopRepo, publisher, auditDispatcher)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		providerRepo,
		serviceRepo,
		shopRepo,
		publisher,
		auditDispatcher,
	)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, providerRepo, serviceRepo, shopRepo)
	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo, shopRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo, shopRepo)
	listByCustomerUC := ucBooking.NewListBookingsByCustomer(bookingRepo, customerRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, providerRepo)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db, listByCustomerUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(providerRepo)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		startBookingUC,
		completeBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		markNoShowUC,
		availabilityUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, createBookingUC, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/customers", customerHandler.List)
			secured.GET("/me/customers/:id/bookings", customerHandler.ListBookings)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.GET("/me/availability", bookingHandler.Availability)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/start", bookingHandler.Start)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/me/bookings/:id/no-show", bookingHandler.MarkNoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
