package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhyrak/go-facultyload/internal/config"
	"github.com/rhyrak/go-facultyload/internal/logger"
	"github.com/rhyrak/go-facultyload/internal/server"
)

// ConfigFileEnv names the optional configuration file.
const ConfigFileEnv = "FL_CONFIG_FILE"

func main() {
	cfg, err := config.Load(os.Getenv(ConfigFileEnv))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)
	logg := logger.New("server", cfg.Logging.Level, cfg.Logging.Format)

	srv, err := server.New(cfg, logg, prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		logg.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
