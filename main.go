package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/festflow/festflow-api/cmd/app"
)

// @title          FestFlow API
// @version        1.0
// @description    College event management: events, organizers and registrations.
// @BasePath       /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
