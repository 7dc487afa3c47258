package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/client"
	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/crypto"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/MKhiriev/go-history-sync/internal/tui"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/mattn/go-isatty"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("go-history-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	secret := []byte(cfg.App.ProjectSecret)
	transport, err := adapter.NewTransport(cfg.Adapter, log,
		adapter.WithToken(cfg.App.Token),
		adapter.WithKeyHash(crypto.KeyHash(secret)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create transport")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	services, err := service.NewClientServices(ctx, localStorage, transport, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui := tui.New(buildInfo(), log)
	plain := !isatty.IsTerminal(os.Stdout.Fd())

	app, err := client.NewApp(services, ui, cfg, os.Stdout, plain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
