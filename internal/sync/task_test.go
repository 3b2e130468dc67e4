package sync

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/se-builders/crm-sync/internal/model"
)

func TestCreateTaskProperties(t *testing.T) {
	var got map[string]string
	s := New(&mockClient{
		createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
			got = props
			return "701", nil
		},
	}, WithClock(fixedClock(testNow)))

	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	outcome, err := s.CreateTask(context.Background(), model.TaskFields{
		Subject:  "Follow up on proposal",
		Body:     "Call Jane",
		Priority: model.PriorityHigh,
		DueDate:  due,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "701", outcome.ID)

	assert.Equal(t, "Follow up on proposal", got["hs_task_subject"])
	assert.Equal(t, "Call Jane", got["hs_task_body"])
	assert.Equal(t, "NOT_STARTED", got["hs_task_status"])
	assert.Equal(t, "HIGH", got["hs_task_priority"])
	assert.Equal(t, strconv.FormatInt(due.UnixMilli(), 10), got["hs_timestamp"], "due date is epoch millis")
}

func TestCreateTaskDefaults(t *testing.T) {
	var got map[string]string
	s := New(&mockClient{
		createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
			got = props
			return "701", nil
		},
	}, WithClock(fixedClock(testNow)))

	_, err := s.CreateTask(context.Background(), model.TaskFields{Subject: "Follow up"}, "")
	require.NoError(t, err)

	assert.Equal(t, "MEDIUM", got["hs_task_priority"])
	wantDue := testNow.AddDate(0, 0, 7)
	assert.Equal(t, strconv.FormatInt(wantDue.UnixMilli(), 10), got["hs_timestamp"], "due defaults to a week out")
	_, hasBody := got["hs_task_body"]
	assert.False(t, hasBody, "empty body omitted")
}

func TestCreateTaskRequiresSubject(t *testing.T) {
	s := New(&mockClient{})
	_, err := s.CreateTask(context.Background(), model.TaskFields{Body: "orphan"}, "")
	assert.ErrorContains(t, err, "subject is required")
}

func TestCreateTaskAssociation(t *testing.T) {
	crm := newFakeCRM()
	s := New(crm)

	outcome, err := s.CreateTask(context.Background(), model.TaskFields{Subject: "Follow up"}, "jane@acme.com")
	require.NoError(t, err)
	assert.True(t, outcome.AssociationOK)
	require.Len(t, crm.associations, 1)
	assert.Contains(t, crm.associations[0], "tasks/")
}

func TestCreateTaskAssociationFailureAbsorbed(t *testing.T) {
	crm := newFakeCRM()
	crm.failAssociate = true
	s := New(crm)

	outcome, err := s.CreateTask(context.Background(), model.TaskFields{Subject: "Follow up"}, "jane@acme.com")
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.ID)
	assert.False(t, outcome.AssociationOK)
}

func TestCreateTaskRemoteFailure(t *testing.T) {
	s := New(&mockClient{
		createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
			return "", errors.New("503 from remote")
		},
	})
	_, err := s.CreateTask(context.Background(), model.TaskFields{Subject: "Follow up"}, "")
	assert.ErrorContains(t, err, "create task")
}

func TestCreateTaskJournalsActivity(t *testing.T) {
	journal := &fakeJournal{}
	s := New(newFakeCRM(), WithJournal(journal))

	_, err := s.CreateTask(context.Background(), model.TaskFields{Subject: "Follow up"}, "")
	require.NoError(t, err)
	require.Len(t, journal.activities, 1)
	assert.Equal(t, model.ActivityTaskCreated, journal.activities[0].Kind)
}
