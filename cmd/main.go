package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/osoroyal/churchhub/config"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/routes"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if cfg.AppEnv == "dev" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// connect first; if the DB is down the process should fail early
	database.Connect(cfg, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg.JWTSecret)

	addr := ":" + cfg.AppPort
	logger.Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
