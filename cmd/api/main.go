package main

import (
	_ "isa_platform/docs"
	"isa_platform/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           ISA Payments API
// @version         1.0
// @description     Checkout, payment webhooks and digital delivery for ISA storefronts, backed by DynamoDB and Mercado Pago.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
