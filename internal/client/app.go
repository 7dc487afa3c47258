package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/app"
	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/tui"
	"github.com/MKhiriev/go-history-sync/internal/workers"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/gofrs/flock"
)

const usage = `usage: client [flags] <command>

commands:
  commit <action> [track-id] [json-data]  record an edit
  log                                     list committed revisions
  sync                                    synchronize with the remote history
  watch                                   synchronize every -sync-interval
  version                                 print build information`

type App struct {
	services *service.ClientServices
	view     SyncView

	// plain replaces the interactive view with one line per stage.
	plain bool

	address      string
	secret       []byte
	syncInterval time.Duration
	lock         *flock.Flock

	out    io.Writer
	logger *logger.Logger
}

// NewApp builds the client. With plain set, sync progress is printed as
// lines instead of through view.
func NewApp(services *service.ClientServices, view SyncView, cfg *config.ClientConfig, out io.Writer, plain bool, logger *logger.Logger) (*App, error) {
	if services == nil || view == nil || cfg == nil {
		return nil, errors.New("client services, view, and config are required")
	}

	return &App{
		services:     services,
		view:         view,
		plain:        plain,
		address:      cfg.Adapter.Address,
		secret:       []byte(cfg.App.ProjectSecret),
		syncInterval: cfg.Workers.SyncInterval,
		lock:         flock.New(cfg.Storage.DB.LockPath()),
		out:          out,
		logger:       logger,
	}, nil
}

// Run implements Client.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUnknownCommand
	}

	switch args[0] {
	case "commit":
		return a.commit(ctx, args[1:])
	case "log":
		return a.log()
	case "sync":
		return a.sync(ctx)
	case "watch":
		return a.watch(ctx)
	case "version":
		return a.version()
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

func (a *App) commit(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("%w: commit <action> [track-id] [json-data]", ErrInvalidArguments)
	}

	record := models.ChangeRecord{Action: args[0]}
	if len(args) > 1 {
		record.TrackID = args[1]
	}
	if len(args) > 2 {
		if !json.Valid([]byte(args[2])) {
			return fmt.Errorf("%w: data is not valid JSON", ErrInvalidArguments)
		}
		record.Data = json.RawMessage(args[2])
	}

	info, err := a.services.ProjectService.Commit(ctx, record)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Fprintf(a.out, "revision %d %s\n", info.Index, info.Hash)
	return nil
}

func (a *App) log() error {
	revisions, err := a.services.ProjectService.Log()
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	project := a.services.ProjectService
	fmt.Fprintln(a.out, tui.RenderLog(project.ProjectID(), project.Version(), revisions))
	return nil
}

// sync runs one attempt while holding the lock file next to the local
// database.
func (a *App) sync(ctx context.Context) error {
	locked, err := a.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", a.lock.Path(), err)
	}
	if !locked {
		return ErrProjectLocked
	}
	defer a.lock.Unlock()

	req, err := service.NewSyncRequest(a.services.ProjectService, a.address, a.secret)
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := a.services.SyncService.Start(attemptCtx, req)
	if errors.Is(err, service.ErrSyncInProgress) {
		return fmt.Errorf("%w: %s", ErrProjectLocked, app.MsgSyncInProgress)
	}
	if err != nil {
		return fmt.Errorf("start sync: %w", err)
	}

	var last models.SyncEvent
	if !a.plain {
		last, err = a.view.RunSync(attemptCtx, req.ProjectID, events, cancel)
		if err != nil {
			return fmt.Errorf("sync view: %w", err)
		}
	} else {
		last = a.printEvents(events)
	}

	return a.report(last)
}

// printEvents writes one line per stage transition and returns the last event.
func (a *App) printEvents(events <-chan models.SyncEvent) models.SyncEvent {
	var last models.SyncEvent
	for ev := range events {
		if ev.Stage != last.Stage && !ev.Stage.IsTerminal() {
			fmt.Fprintf(a.out, "%s...\n", ev.Stage)
		}
		last = ev
	}
	return last
}

func (a *App) report(last models.SyncEvent) error {
	log := a.logger.WithSession(last.SessionID, a.services.ProjectService.ProjectID())

	if last.Stage.IsError() {
		log.Err(last.Err).Str("func", "App.sync").Str("stage", last.Stage.String()).Msg("sync failed")
		if a.plain {
			fmt.Fprintln(a.out, app.StageMessage(last.Stage))
		}
		return fmt.Errorf("%w: %s", ErrSyncFailed, app.StageMessage(last.Stage))
	}

	log.Info().Str("func", "App.sync").Str("stage", last.Stage.String()).Msg("sync finished")
	if a.plain {
		fmt.Fprintln(a.out, app.StageMessage(last.Stage))
	}
	return nil
}

// watch runs the background sync job until ctx is cancelled.
func (a *App) watch(ctx context.Context) error {
	interval := a.syncInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	fmt.Fprintf(a.out, "watching %s every %s, press ctrl+c to stop\n",
		strings.TrimSpace(a.address), interval)

	workers.NewWorkers(workers.NewJobWorker(a.services.SyncJob, interval)).Run(ctx)
	return nil
}

func (a *App) version() error {
	fmt.Fprintln(a.out, a.view.BuildInfo())
	return nil
}
