package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/se-builders/crm-sync/internal/model"
	"github.com/se-builders/crm-sync/internal/store"
	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// mockClient implements hubspot.Client with overridable functions.
type mockClient struct {
	searchFn        func(ctx context.Context, email string) (*hubspot.Object, error)
	createContactFn func(ctx context.Context, props map[string]string) (string, error)
	updateContactFn func(ctx context.Context, id string, props map[string]string) error
	createDealFn    func(ctx context.Context, props map[string]string) (string, error)
	createTaskFn    func(ctx context.Context, props map[string]string) (string, error)
	createNoteFn    func(ctx context.Context, props map[string]string) (string, error)
	associateFn     func(ctx context.Context, fromType hubspot.ObjectType, fromID string, toType hubspot.ObjectType, toID string) error
}

func (m *mockClient) SearchContactByEmail(ctx context.Context, email string) (*hubspot.Object, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, email)
	}
	return nil, nil
}

func (m *mockClient) CreateContact(ctx context.Context, props map[string]string) (string, error) {
	if m.createContactFn != nil {
		return m.createContactFn(ctx, props)
	}
	return "201", nil
}

func (m *mockClient) UpdateContact(ctx context.Context, id string, props map[string]string) error {
	if m.updateContactFn != nil {
		return m.updateContactFn(ctx, id, props)
	}
	return nil
}

func (m *mockClient) CreateDeal(ctx context.Context, props map[string]string) (string, error) {
	if m.createDealFn != nil {
		return m.createDealFn(ctx, props)
	}
	return "601", nil
}

func (m *mockClient) CreateTask(ctx context.Context, props map[string]string) (string, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(ctx, props)
	}
	return "701", nil
}

func (m *mockClient) CreateNote(ctx context.Context, props map[string]string) (string, error) {
	if m.createNoteFn != nil {
		return m.createNoteFn(ctx, props)
	}
	return "801", nil
}

func (m *mockClient) Associate(ctx context.Context, fromType hubspot.ObjectType, fromID string, toType hubspot.ObjectType, toID string) error {
	if m.associateFn != nil {
		return m.associateFn(ctx, fromType, fromID, toType, toID)
	}
	return nil
}

// fakeCRM is a stateful in-memory CRM for idempotence and merge tests.
type fakeCRM struct {
	contacts      map[string]*hubspot.Object // keyed by email
	nextID        int
	associations  []string
	failAssociate bool
	searchCalls   int
	createCalls   int
	updateCalls   int
}

func newFakeCRM() *fakeCRM {
	return &fakeCRM{contacts: make(map[string]*hubspot.Object), nextID: 200}
}

func (f *fakeCRM) SearchContactByEmail(_ context.Context, email string) (*hubspot.Object, error) {
	f.searchCalls++
	if c, ok := f.contacts[email]; ok {
		return c, nil
	}
	return nil, nil
}

func (f *fakeCRM) CreateContact(_ context.Context, props map[string]string) (string, error) {
	f.createCalls++
	f.nextID++
	id := fmt.Sprintf("%d", f.nextID)
	copied := make(map[string]string, len(props))
	for k, v := range props {
		copied[k] = v
	}
	f.contacts[props["email"]] = &hubspot.Object{ID: id, Properties: copied}
	return id, nil
}

func (f *fakeCRM) UpdateContact(_ context.Context, id string, props map[string]string) error {
	f.updateCalls++
	for _, c := range f.contacts {
		if c.ID == id {
			for k, v := range props {
				c.Properties[k] = v
			}
			return nil
		}
	}
	return errors.New("contact not found")
}

func (f *fakeCRM) CreateDeal(_ context.Context, props map[string]string) (string, error) {
	f.nextID++
	return fmt.Sprintf("%d", f.nextID), nil
}

func (f *fakeCRM) CreateTask(_ context.Context, props map[string]string) (string, error) {
	f.nextID++
	return fmt.Sprintf("%d", f.nextID), nil
}

func (f *fakeCRM) CreateNote(_ context.Context, props map[string]string) (string, error) {
	f.nextID++
	return fmt.Sprintf("%d", f.nextID), nil
}

func (f *fakeCRM) Associate(_ context.Context, fromType hubspot.ObjectType, fromID string, toType hubspot.ObjectType, toID string) error {
	if f.failAssociate {
		return errors.New("association failed")
	}
	f.associations = append(f.associations, fmt.Sprintf("%s/%s->%s/%s", fromType, fromID, toType, toID))
	return nil
}

// fakeJournal records activities in memory.
type fakeJournal struct {
	activities []model.Activity
	failWrites bool
}

func (j *fakeJournal) RecordActivity(_ context.Context, a model.Activity) (*model.Activity, error) {
	if j.failWrites {
		return nil, errors.New("journal unavailable")
	}
	a.ID = fmt.Sprintf("j%d", len(j.activities)+1)
	a.CreatedAt = time.Now()
	j.activities = append(j.activities, a)
	return &a, nil
}

func (j *fakeJournal) ListActivities(_ context.Context, _ store.ActivityFilter) ([]model.Activity, error) {
	return j.activities, nil
}

func (j *fakeJournal) CountByKind(_ context.Context, _ time.Time) (map[model.ActivityKind]int, error) {
	counts := make(map[model.ActivityKind]int)
	for _, a := range j.activities {
		counts[a.Kind]++
	}
	return counts, nil
}

func (j *fakeJournal) Migrate(_ context.Context) error { return nil }
func (j *fakeJournal) Close() error                    { return nil }

func (j *fakeJournal) kinds() []string {
	var kinds []string
	for _, a := range j.activities {
		kinds = append(kinds, string(a.Kind))
	}
	return kinds
}

// fixedClock returns a deterministic time source.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

func TestEnabled(t *testing.T) {
	assert.True(t, New(&mockClient{}).Enabled())
	assert.False(t, New(nil).Enabled())
}

func TestDisabledShortCircuit(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	_, err := s.UpsertContact(ctx, model.ContactFields{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = s.CreateDeal(ctx, model.DealFields{Name: "Deal"}, "")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = s.CreateTask(ctx, model.TaskFields{Subject: "Task"}, "")
	assert.ErrorIs(t, err, ErrDisabled)

	ok, err := s.LogConversation(ctx, "a@b.com", nil, "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = s.LogCostEstimate(ctx, "a@b.com", model.EstimateFields{}, "", 0)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = s.LogSafetyIssue(ctx, "Site A", "LA", model.SeverityCritical, "desc", "")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestJournalFailureDoesNotFailSync(t *testing.T) {
	journal := &fakeJournal{failWrites: true}
	s := New(newFakeCRM(), WithJournal(journal))

	id, err := s.UpsertContact(context.Background(), model.ContactFields{Email: "a@b.com"})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestTruncateHelper(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, strings.Repeat("x", 500), truncate(strings.Repeat("x", 900), 500))
}
