// main.go
package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gewnthar/countries/config"
	"github.com/gewnthar/countries/database"
	"github.com/gewnthar/countries/external"
	"github.com/gewnthar/countries/handlers"
	"github.com/gewnthar/countries/services"
)

func main() {
	log.Println("Starting Country Currency API...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := database.InitDB(config.AppConfig.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB(db)

	store := database.NewCountryStore(db)
	client := external.NewClient(config.AppConfig.ExternalAPI)
	images := services.NewImageService(config.SummaryImagePath())
	refresher := services.NewRefreshService(client, store, images, nil)

	router := gin.Default()
	router.Use(cors.Default())

	handlers.NewCountryHandler(refresher, store, images).Register(router)
	handlers.NewStatusHandler(store).Register(router)

	addr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
