package main

import (
	"context"
	"log"

	"hirepulse-backend/internal/bootstrap"
	"hirepulse-backend/internal/shared/config"
	"hirepulse-backend/internal/shared/server"
	"hirepulse-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure("info")

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{
		"addr":       addr,
		"env":        cfg.Env,
		"model_mode": cfg.ModelMode,
	})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
