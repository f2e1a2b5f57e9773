package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/barberflowapp/barberflow-api/internal/audit"
	"github.com/barberflowapp/barberflow-api/internal/cache"
	"github.com/barberflowapp/barberflow-api/internal/config"
	"github.com/barberflowapp/barberflow-api/internal/handlers"
	"github.com/barberflowapp/barberflow-api/internal/infra/repository"
	"github.com/barberflowapp/barberflow-api/internal/middleware"
	bookinguc "github.com/barberflowapp/barberflow-api/internal/usecase/booking"
	ledgeruc "github.com/barberflowapp/barberflow-api/internal/usecase/ledger"
	saleuc "github.com/barberflowapp/barberflow-api/internal/usecase/sale"
)

// Setup monta toda a árvore de rotas e a injeção de dependências.
func Setup(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availCache *cache.AvailabilityCache,
	log zerolog.Logger,
) {
	bookingRepo := repository.NewBookingGormRepository(db)
	ledgerRepo := repository.NewLedgerGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// Interfaces recebem nil explícito quando o Redis está desligado;
	// um *AvailabilityCache nil dentro da interface não seria nil.
	var monthCache bookinguc.MonthCache
	var bumper bookinguc.VersionBumper
	if availCache != nil {
		monthCache = availCache
		bumper = availCache
	}

	getAvailability := bookinguc.NewGetAvailability(bookingRepo)
	monthAvailability := bookinguc.NewMonthAvailability(bookingRepo, monthCache)
	createBooking := bookinguc.NewCreateBooking(bookingRepo, auditDispatcher, bumper)
	setStatus := bookinguc.NewSetStatus(bookingRepo, auditDispatcher, bumper)
	deleteBooking := bookinguc.NewDeleteBooking(bookingRepo, auditDispatcher, bumper)

	creditSale := ledgeruc.NewRecordCreditSale(ledgerRepo)
	applyPayment := ledgeruc.NewApplyPayment(ledgerRepo, cfg.SettleMethod)
	markPaid := ledgeruc.NewMarkPaid(ledgerRepo, cfg.SettleMethod)
	reverseTransaction := ledgeruc.NewReverseTransaction(ledgerRepo, log)
	recordSale := saleuc.NewRecordSale(ledgerRepo, creditSale, auditDispatcher)

	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	publicHandler := handlers.NewPublicHandler(db, getAvailability, monthAvailability, createBooking)
	barberHandler := handlers.NewBarberHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(db, setStatus, deleteBooking)
	transactionHandler := handlers.NewTransactionHandler(db, recordSale, reverseTransaction, log)
	fiadoHandler := handlers.NewFiadoHandler(db, applyPayment, markPaid, log)
	expenseHandler := handlers.NewExpenseHandler(db, auditDispatcher)
	marketingHandler := handlers.NewMarketingHandler(db)

	// --------- Público (sem token) ---------

	public := r.Group("/public")
	{
		public.GET("/barbers", publicHandler.ListBarbers)
		public.GET("/services", publicHandler.ListServices)
		public.GET("/availability", publicHandler.GetDayAvailability)
		public.GET("/availability/month", publicHandler.GetMonthAvailability)
		public.POST("/bookings", publicHandler.CreateBooking)
		public.GET("/bookings/:reference/calendar.ics", publicHandler.DownloadICS)
	}

	// --------- Auth ---------

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// --------- Back-office (token) ---------

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/me", meHandler.GetMe)

		api.GET("/barbers", barberHandler.List)
		api.POST("/barbers", barberHandler.Create)
		api.PUT("/barbers/:id", barberHandler.Update)
		api.DELETE("/barbers/:id", barberHandler.Delete)
		api.GET("/barbers/:id/schedule", barberHandler.GetSchedule)
		api.PUT("/barbers/:id/schedule", barberHandler.ReplaceSchedule)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.PUT("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		api.GET("/products", productHandler.List)
		api.POST("/products", productHandler.Create)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.GET("/bookings", bookingHandler.List)
		api.PATCH("/bookings/:id/status", bookingHandler.SetStatus)
		api.DELETE("/bookings/:id", bookingHandler.Delete)

		api.POST("/transactions", transactionHandler.Create)
		api.GET("/transactions", transactionHandler.List)
		api.DELETE("/transactions/:id", transactionHandler.Delete)

		api.GET("/fiado/clients", fiadoHandler.ListClients)
		api.POST("/fiado/clients/:id/transactions/:txId/pay", fiadoHandler.Pay)
		api.POST("/fiado/clients/:id/transactions/:txId/mark-paid", fiadoHandler.MarkPaid)

		api.GET("/expenses", expenseHandler.List)
		api.POST("/expenses", expenseHandler.Create)
		api.PUT("/expenses/:id", expenseHandler.Update)
		api.DELETE("/expenses/:id", expenseHandler.Delete)

		api.GET("/marketing/contacts", marketingHandler.ListContacts)
	}
}
