package main

import (
	"os"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/app"
	config "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/cfg"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/joho/godotenv"
)

// @title        Lishaa Agro Health Elevate API
// @version      1.0
// @description  Product catalog and admin management API for the herbal products storefront.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in    header
// @name  Authorization
func main() {
	_ = godotenv.Load()

	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
