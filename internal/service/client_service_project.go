package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/history"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/MKhiriev/go-history-sync/internal/utils"
	"github.com/MKhiriev/go-history-sync/internal/validators"
	"github.com/MKhiriev/go-history-sync/models"
)

type clientProjectService struct {
	repo store.LocalHistoryRepository

	projectID string

	ids    idGenerator
	now    func() time.Time
	logger *logger.Logger

	mu   sync.RWMutex
	live *history.Store
}

// NewClientProjectService opens the history of projectID from repo. A project
// that was never committed to starts empty at version 0.
func NewClientProjectService(ctx context.Context, projectID string, repo store.LocalHistoryRepository, logger *logger.Logger) (ClientProjectService, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: empty project id", ErrInvalidDataProvided)
	}

	root, err := repo.LoadHistory(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load local history: %w", err)
	}

	live, err := restoreHistory(root, projectID)
	if err != nil {
		logger.Err(err).
			Str("func", "NewClientProjectService").
			Str("project_id", projectID).
			Msg("stored history is not valid")
		return nil, fmt.Errorf("restore local history: %w", err)
	}

	return &clientProjectService{
		repo:      repo,
		projectID: projectID,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
		live:      live,
	}, nil
}

func (p *clientProjectService) Commit(ctx context.Context, record models.ChangeRecord) (models.RevisionInfo, error) {
	log := logger.FromContext(ctx)

	if record.ID == "" {
		record.ID = p.ids.Generate()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = p.now().UTC()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return models.RevisionInfo{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The live store is swapped only after the row is persisted.
	next, seq, entry, err := appendPayload(p.live, payload)
	if err != nil {
		log.Err(err).
			Str("func", "clientProjectService.Commit").
			Str("project_id", p.projectID).
			Str("action", record.Action).
			Msg("revision rejected")
		return models.RevisionInfo{}, err
	}

	err = p.repo.AppendRevision(ctx, p.projectID, seq, entry)
	if errors.Is(err, store.ErrRevisionConflict) {
		// another client process got seq first
		log.Warn().
			Str("func", "clientProjectService.Commit").
			Str("project_id", p.projectID).
			Int("seq", seq).
			Msg("stored history moved on, reloading")

		var stored *history.Store
		if stored, err = p.load(ctx); err == nil {
			if next, seq, entry, err = appendPayload(stored, payload); err == nil {
				err = p.repo.AppendRevision(ctx, p.projectID, seq, entry)
			}
		}
	}
	if err != nil {
		log.Err(err).
			Str("func", "clientProjectService.Commit").
			Str("project_id", p.projectID).
			Int("seq", seq).
			Msg("failed to persist revision")
		return models.RevisionInfo{}, fmt.Errorf("persist revision: %w", err)
	}

	p.live = next

	return models.RevisionInfo{Index: seq, Hash: entry.Hash, Record: record}, nil
}

func (p *clientProjectService) Snapshot() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return history.Marshal(p.live)
}

// Install implements HistoryInstaller. The merged history is combined with
// what the database holds at the moment of the swap, so revisions committed
// while the attempt was running, by this process or another one sharing the
// database, are appended after the merged ones and never lost.
func (p *clientProjectService) Install(ctx context.Context, merged *history.Store) error {
	log := logger.FromContext(ctx)

	if merged == nil || merged.RootKey() != p.projectID {
		return fmt.Errorf("%w: merged history does not belong to %q", history.ErrSchemaMismatch, p.projectID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var next *history.Store
	err := p.repo.ReplaceHistory(ctx, p.projectID, func(stored models.HistoryRoot) (models.HistoryRoot, error) {
		onDisk, err := p.restore(stored)
		if err != nil {
			return models.HistoryRoot{}, fmt.Errorf("restore stored history: %w", err)
		}

		result := merged.Clone()
		result.MergeWith(onDisk)
		result.MergeWith(p.live)

		if next, err = p.restore(*result.Tree().History); err != nil {
			return models.HistoryRoot{}, fmt.Errorf("rebuild merged history: %w", err)
		}
		return *next.Tree().History, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "clientProjectService.Install").
			Str("project_id", p.projectID).
			Int64("version", merged.Version()).
			Msg("failed to persist merged history")
		return fmt.Errorf("persist merged history: %w", err)
	}

	log.Info().
		Str("func", "clientProjectService.Install").
		Str("project_id", p.projectID).
		Int64("old_version", p.live.Version()).
		Int64("new_version", next.Version()).
		Int("revisions", next.Len()).
		Msg("merged history installed")

	p.live = next
	return nil
}

func (p *clientProjectService) Log() ([]models.RevisionInfo, error) {
	p.mu.RLock()
	entries := p.live.Entries()
	p.mu.RUnlock()

	infos := make([]models.RevisionInfo, 0, len(entries))
	for i, rev := range entries {
		var record models.ChangeRecord
		if err := json.Unmarshal(rev.Payload, &record); err != nil {
			return nil, fmt.Errorf("%w: revision %d: %w", history.ErrCorruptHistory, i, err)
		}
		infos = append(infos, models.RevisionInfo{Index: i, Hash: rev.Hash.String(), Record: record})
	}
	return infos, nil
}

func (p *clientProjectService) Version() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.live.Version()
}

func (p *clientProjectService) ProjectID() string {
	return p.projectID
}

// load reads the history as currently stored, which may be ahead of p.live
// when another process shares the database.
func (p *clientProjectService) load(ctx context.Context) (*history.Store, error) {
	root, err := p.repo.LoadHistory(ctx, p.projectID)
	if err != nil {
		return nil, fmt.Errorf("load local history: %w", err)
	}

	stored, err := p.restore(root)
	if err != nil {
		return nil, fmt.Errorf("restore local history: %w", err)
	}
	return stored, nil
}

func (p *clientProjectService) restore(root models.HistoryRoot) (*history.Store, error) {
	return restoreHistory(root, p.projectID)
}

func restoreHistory(root models.HistoryRoot, projectID string) (*history.Store, error) {
	return history.FromTree(models.HistoryTree{History: &root}, projectID,
		history.WithValidator(validators.ValidateChangeRecord))
}

// appendPayload appends payload to a copy of base and returns the copy with
// the row to persist at seq.
func appendPayload(base *history.Store, payload []byte) (*history.Store, int, models.RevisionEntry, error) {
	next := base.Clone()
	rev, err := next.Append(payload)
	if err != nil {
		return nil, 0, models.RevisionEntry{}, err
	}
	return next, next.Len() - 1, models.RevisionEntry{Payload: rev.Payload, Hash: rev.Hash.String()}, nil
}
