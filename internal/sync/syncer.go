// Package sync turns application events into durable, deduplicated HubSpot
// records: contacts, deals, tasks, and notes. Operations are synchronous and
// never retried; remote failures surface as errors at the operation boundary
// and association failures are absorbed.
package sync

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/model"
	"github.com/se-builders/crm-sync/internal/store"
	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// ErrDisabled is returned by every operation when the syncer was built
// without a HubSpot credential. Callers check it with errors.Is and treat
// the feature as unavailable rather than failed.
var ErrDisabled = eris.New("sync: hubspot integration disabled")

// Syncer orchestrates CRM writes against an injected HubSpot client. A nil
// client produces a permanently disabled syncer; this replaces credential
// null-checks scattered across call sites with one boundary check.
type Syncer struct {
	client  hubspot.Client
	journal store.Store
	log     *zap.Logger
	now     func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithJournal attaches a local activity journal. Journal writes are
// best-effort and never fail a sync operation.
func WithJournal(journal store.Store) Option {
	return func(s *Syncer) {
		s.journal = journal
	}
}

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// New creates a Syncer. Pass a nil client to get a disabled syncer whose
// operations all return ErrDisabled without touching the network.
func New(client hubspot.Client, opts ...Option) *Syncer {
	s := &Syncer{
		client: client,
		log:    zap.L().With(zap.String("component", "sync")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether the syncer can reach HubSpot. Read-only and safe
// to call at arbitrary frequency.
func (s *Syncer) Enabled() bool {
	return s.client != nil
}

// record journals a completed sync outcome. Failures are logged and dropped;
// the CRM write already succeeded and the journal is advisory.
func (s *Syncer) record(ctx context.Context, kind model.ActivityKind, objectID, detail, source string) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.RecordActivity(ctx, model.Activity{
		Kind:     kind,
		ObjectID: objectID,
		Detail:   detail,
		Source:   source,
	})
	if err != nil {
		s.log.Warn("journal write failed",
			zap.String("kind", string(kind)),
			zap.String("object_id", objectID),
			zap.Error(err),
		)
	}
}
