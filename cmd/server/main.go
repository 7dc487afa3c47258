package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/crypto"
	"github.com/MKhiriev/go-history-sync/internal/handler"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/server"
	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/MKhiriev/go-history-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("go-history-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if args := flag.Args(); len(args) > 0 && args[0] == "token" {
		if err := printToken(cfg, args[1:], log); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	printBuildInfo(buildInfo())

	if err := cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configs")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, buildInfo(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// printToken prints a token scoped to the remote ids of the given projects:
// token <subject> <project-id>...
func printToken(cfg *config.StructuredConfig, args []string, log *logger.Logger) error {
	if len(args) < 2 {
		return errors.New("usage: server token <subject> <project-id>...")
	}

	remoteIDs := make([]string, 0, len(args)-1)
	for _, projectID := range args[1:] {
		remoteIDs = append(remoteIDs, crypto.RemoteID(projectID))
	}

	token, err := service.NewAuthService(cfg.App, log).CreateToken(context.Background(), args[0], remoteIDs...)
	if err != nil {
		return err
	}

	fmt.Println(token.SignedString)
	return nil
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
