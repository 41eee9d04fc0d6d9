package main

import (
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Text2toss Pickup API
// @version         1.0
// @description     Junk removal quotes, admin approval, pickup scheduling and payments.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
