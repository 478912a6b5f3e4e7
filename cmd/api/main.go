package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gopower/internal/api"
	"gopower/internal/config"
	"gopower/internal/container"
)

func main() {
	// .env is optional, environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize container:", err)
	}
	defer c.Close()

	gin.SetMode(cfg.Server.GinMode)
	router := gin.Default()

	handler := api.NewHandler(c.Calculations, c.Sweeps, c.Exporter, c.Docs, c.Logger)
	handler.Register(router)

	addr := ":" + cfg.Server.APIPort
	c.Logger.Info("api listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server failed:", err)
	}
}
