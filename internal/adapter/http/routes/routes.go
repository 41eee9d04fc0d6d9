package routes

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	_ "github.com/Lee196444/Text2toss-app/docs"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/handlers"
	"github.com/Lee196444/Text2toss-app/internal/adapter/persistence/memory"
	"github.com/Lee196444/Text2toss-app/internal/adapter/persistence/repository"
	"github.com/Lee196444/Text2toss-app/internal/domain/pricing"
	"github.com/Lee196444/Text2toss-app/internal/infrastructure/advisor"
	appconfig "github.com/Lee196444/Text2toss-app/internal/infrastructure/config"
	"github.com/Lee196444/Text2toss-app/internal/infrastructure/database"
	"github.com/Lee196444/Text2toss-app/internal/infrastructure/notifications"
	"github.com/Lee196444/Text2toss-app/internal/infrastructure/payments"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathQuotes           = "/quotes"
	PathBookings         = "/bookings"
	PathAvailability     = "/availability"
	PathCustomerApproval = "/customer-approval"
	PathPayments         = "/payments"
	PathWebhook          = "/webhook"
	PathAdmin            = "/admin"
)

// Run will start the server
func Run() {
	app, err := appconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	router, closer, err := NewRouter(app)
	if err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}
	defer closer.Close()

	if err := router.Run(":" + strconv.Itoa(app.Port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter wires storage, gateways and handlers for app. The closer releases
// the notifier connection, if any.
func NewRouter(app appconfig.App) (*gin.Engine, io.Closer, error) {
	deps, closer, err := buildDependencies(app)
	if err != nil {
		return nil, nil, err
	}

	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPublicRoutes(v1, deps)
	addAdminRoutes(v1.Group(PathAdmin), deps)

	return router, closer, nil
}

type handlerSet struct {
	quotes       *handlers.QuoteHandler
	admin        *handlers.AdminHandler
	bookings     *handlers.BookingHandler
	availability *handlers.AvailabilityHandler
	customer     *handlers.CustomerApprovalHandler
	payments     *handlers.PaymentHandler
}

type repositories struct {
	quotes   interfaces.IQuoteRepository
	bookings interfaces.IBookingRepository
	payments interfaces.IPaymentRepository
}

func newRepositories(app appconfig.App) repositories {
	if app.StorageDriver == appconfig.StorageMemory {
		log.Printf("[storage] driver=memory; data is lost on restart")
		return repositories{
			quotes:   memory.NewQuoteRepository(),
			bookings: memory.NewBookingRepository(),
			payments: memory.NewPaymentRepository(),
		}
	}

	ddb := database.ConnectDynamoDB(app)
	tables := app.Tables()
	return repositories{
		quotes:   repository.NewQuoteDynamoRepository(ddb, tables.Quotes),
		bookings: repository.NewBookingDynamoRepository(ddb, tables.Bookings, tables.SlotLocks),
		payments: repository.NewPaymentDynamoRepository(ddb, tables.Payments),
	}
}

func buildDependencies(app appconfig.App) (handlerSet, io.Closer, error) {
	pricingCfg, err := app.PricingConfig()
	if err != nil {
		return handlerSet{}, nil, err
	}
	pricer, err := pricing.NewPricer(pricingCfg)
	if err != nil {
		return handlerSet{}, nil, err
	}
	epsilon, err := app.Epsilon()
	if err != nil {
		return handlerSet{}, nil, err
	}
	calendar := app.Calendar()
	repos := newRepositories(app)

	notifier, closer, err := notifications.New(app)
	if err != nil {
		return handlerSet{}, nil, fmt.Errorf("notifier: %w", err)
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(app.MercadoPagoAccessToken, app.PaymentGatewayMock)
	if err != nil {
		log.Printf("[payment] Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	var (
		priceAdvisor  interfaces.IPriceAdvisor
		visionAdvisor interfaces.IVisionAdvisor
	)
	openAI, err := advisor.NewOpenAIAdvisor(app.OpenAIBaseURL, app.OpenAIAPIKey, app.OpenAIModel, app.AdvisorTimeout)
	if err != nil {
		log.Printf("[advisor] OpenAI advisor disabled, using the volume scale only: %v", err)
	} else {
		priceAdvisor, visionAdvisor = openAI, openAI
	}

	messages := usecase.Messages{BusinessName: app.BusinessName, PublicBaseURL: app.PublicBaseURL}

	scheduler := usecase.NewSchedulerUseCase(repos.bookings, calendar)
	quoteUseCase := usecase.NewQuoteUseCase(repos.quotes, pricer, priceAdvisor, visionAdvisor, app.AdvisorTimeout)
	customerUseCase := usecase.NewCustomerApprovalUseCase(repos.bookings, notifier, messages)
	approvalUseCase := usecase.NewApprovalUseCase(repos.quotes, repos.bookings, customerUseCase, epsilon)
	bookingUseCase := usecase.NewBookingUseCase(repos.bookings, repos.quotes, scheduler, calendar, notifier, messages)
	paymentUseCase := usecase.NewPaymentUseCase(repos.payments, repos.quotes, repos.bookings, paymentGateway, usecase.PaymentSettings{
		Currency:        app.Currency,
		PublicBaseURL:   app.PublicBaseURL,
		NotificationURL: app.PaymentNotificationURL,
		BusinessName:    app.BusinessName,
	})

	return handlerSet{
		quotes:       handlers.NewQuoteHandler(quoteUseCase),
		admin:        handlers.NewAdminHandler(quoteUseCase, approvalUseCase),
		bookings:     handlers.NewBookingHandler(bookingUseCase),
		availability: handlers.NewAvailabilityHandler(scheduler),
		customer:     handlers.NewCustomerApprovalHandler(customerUseCase),
		payments:     handlers.NewPaymentHandler(paymentUseCase),
	}, closer, nil
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addPublicRoutes(rg *gin.RouterGroup, h handlerSet) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.quotes.CreateQuote)
		quotes.POST("/image", h.quotes.CreateQuoteFromImage)
		quotes.GET("/:quote_id", h.quotes.GetQuote)
	}

	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", h.bookings.CreateBooking)
		bookings.GET("/:booking_id", h.bookings.GetBooking)
	}

	rg.GET(PathAvailability+"/:date", h.availability.GetAvailability)
	rg.GET(PathAvailability+"-range", h.availability.GetAvailabilityRange)

	approval := rg.Group(PathCustomerApproval)
	{
		approval.GET("/:token", h.customer.GetApproval)
		approval.POST("/:token", h.customer.Respond)
	}

	pay := rg.Group(PathPayments)
	{
		pay.POST("/create-checkout-session", h.payments.CreateCheckoutSession)
		pay.GET("/status/:session_id", h.payments.GetPaymentStatus)
	}
	rg.POST(PathWebhook+"/mercadopago", h.payments.MercadoPagoWebhook)
}

// addAdminRoutes registers the back-office endpoints. Authentication is left to
// the gateway in front of the service.
func addAdminRoutes(rg *gin.RouterGroup, h handlerSet) {
	rg.GET("/pending-quotes", h.admin.ListPendingQuotes)
	rg.GET("/quote-approval-stats", h.admin.ApprovalStats)
	rg.POST("/quotes/:quote_id/approve", h.admin.DecideQuote)

	bookings := rg.Group(PathBookings)
	{
		bookings.PATCH("/:booking_id", h.bookings.UpdateStatus)
		bookings.POST("/:booking_id/completion", h.bookings.Complete)
		bookings.POST("/:booking_id/notify-customer", h.bookings.NotifyCustomer)
	}

	rg.GET("/daily-schedule", h.bookings.DailySchedule)
	rg.GET("/weekly-schedule", h.bookings.WeeklySchedule)
	rg.GET("/calendar-data", h.bookings.CalendarData)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
