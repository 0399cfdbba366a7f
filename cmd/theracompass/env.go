package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Minetz/theracompass/internal/api"
	"github.com/Minetz/theracompass/internal/auth"
	"github.com/Minetz/theracompass/internal/config"
	"github.com/Minetz/theracompass/internal/logging"
)

// appEnv bundles the wired clients every subcommand needs.
type appEnv struct {
	cfg  *config.Root
	log  *logrus.Logger
	api  *api.Client
	auth *auth.Client
}

func buildEnv(configPath string) (*appEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logs)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	ttl := time.Duration(cfg.Identity.TokenTTLSeconds) * time.Second
	return &appEnv{
		cfg:  cfg,
		log:  log,
		api:  api.New(cfg.Backend.URL),
		auth: auth.New(cfg.Identity.URL, cfg.Identity.APIKey, ttl),
	}, nil
}
