package routes

import (
	"log"
	"os"
	"strconv"

	_ "isa_platform/docs" // swag-generated documentation
	"isa_platform/internal/adapter/http/handlers"
	repository "isa_platform/internal/adapter/persistence/repository"
	"isa_platform/internal/infrastructure/cache"
	"isa_platform/internal/infrastructure/database"
	"isa_platform/internal/infrastructure/notification"
	"isa_platform/internal/infrastructure/payments"
	"isa_platform/internal/usecase"
	"isa_platform/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := defaultPort
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		port = v
	}
	if err := router.Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	redisClient := cache.NewRedisClient()

	saleRepo := repository.NewSaleDynamoRepository(ddb)
	balanceRepo := repository.NewSellerBalanceDynamoRepository(ddb)
	commissionRepo := repository.NewPlatformCommissionDynamoRepository(ddb)
	paymentLogRepo := repository.NewPaymentLogDynamoRepository(ddb)
	antifraudLogRepo := repository.NewAntifraudLogDynamoRepository(ddb)
	sellerRepo := repository.NewSellerDynamoRepository(ddb)
	productRepo := repository.NewProductDynamoRepository(ddb)
	settingsRepo := repository.NewPlatformSettingsDynamoRepository(ddb)

	settings := cache.NewSettingsCache(redisClient, settingsRepo)
	locker := cache.NewPaymentLock(redisClient)
	notifier := notification.NewWhatsAppClient()

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	dispatcher := usecase.NewDeliveryDispatcher(productRepo, notifier)
	checkoutUseCase := usecase.NewCheckoutUseCase(saleRepo, sellerRepo, settings, paymentGateway, paymentLogRepo, notifier)
	webhookUseCase := usecase.NewWebhookUseCase(saleRepo, balanceRepo, commissionRepo, paymentLogRepo, antifraudLogRepo, paymentGateway, locker, notifier, dispatcher)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, checkoutHandler, webhookHandler)
}

func setMiddlewares() {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
