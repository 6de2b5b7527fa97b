package app

import (
	"log"

	"github.com/Rasouli77/ellenovastyle/config"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"
)

func BootstrapApp() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	logger.Info("Application bootstrapped successfully")

	return cfg
}
