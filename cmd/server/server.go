package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"visioneer-server/internal/config"
	"visioneer-server/internal/infrastructure/crontab"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/observability"
	"visioneer-server/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	config     *config.Config
}

func init() {
	logger.GetLogger()
	config.Load()
}

// @title Visioneer Board API
// @version 1.0
// @description AI moodboard generation platform: LLM concepts, prompt fan-out, parallel image generation, projects and a usage ledger.
// @contact.name Visioneer Team
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", application.config.MetricsPort), mux)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	dataInitializer, err := CreateDataInitializer()
	if err != nil {
		log.Fatal().Err(err).Msg("create data initializer")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := dataInitializer.Install(ctx); err != nil {
		log.Fatal().Err(err).Msg("startup checks failed")
	}

	application.Start()
}
