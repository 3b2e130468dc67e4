package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/store"
	syncer "github.com/se-builders/crm-sync/internal/sync"
	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// env bundles the wired dependencies for a command invocation.
type env struct {
	Syncer  *syncer.Syncer
	Journal store.Store // nil when journaling is disabled
}

// initEnv constructs the journal and syncer from config. A missing HubSpot
// token yields a disabled syncer rather than an error; commands report the
// disabled state to the user.
func initEnv(ctx context.Context) (*env, error) {
	journal, err := initJournal(ctx)
	if err != nil {
		return nil, err
	}

	var client hubspot.Client
	if cfg.HubSpot.Token == "" {
		zap.L().Warn("hubspot token not configured, CRM sync disabled (set SEB_HUBSPOT_TOKEN)")
	} else {
		opts := []hubspot.Option{hubspot.WithRateLimit(cfg.HubSpot.RateLimit)}
		if cfg.HubSpot.BaseURL != "" {
			opts = append(opts, hubspot.WithBaseURL(cfg.HubSpot.BaseURL))
		}
		client = hubspot.NewClient(cfg.HubSpot.Token, opts...)
	}

	opts := []syncer.Option{}
	if journal != nil {
		opts = append(opts, syncer.WithJournal(journal))
	}

	return &env{
		Syncer:  syncer.New(client, opts...),
		Journal: journal,
	}, nil
}

func initJournal(ctx context.Context) (store.Store, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case "none", "":
		return nil, nil
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func (e *env) Close() {
	if e.Journal != nil {
		_ = e.Journal.Close()
	}
}
