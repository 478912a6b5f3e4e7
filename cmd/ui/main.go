package main

import (
	"log"

	"github.com/joho/godotenv"

	"gopower/internal/config"
	"gopower/internal/container"
	"gopower/ui"
)

func main() {
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

	app, err := ui.NewApp(c.Calculations, c.Docs, c.Logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting power calculator UI on http://localhost:%s", cfg.Server.UIPort)
	log.Fatal(app.Start(ui.Config{Port: cfg.Server.UIPort}))
}
