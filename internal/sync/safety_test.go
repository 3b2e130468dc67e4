package sync

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/se-builders/crm-sync/internal/model"
)

func TestLogSafetyIssueScheduling(t *testing.T) {
	tests := []struct {
		severity     model.Severity
		wantPriority string
		wantDueDays  int
	}{
		{model.SeverityCritical, "HIGH", 1},
		{model.SeverityModerate, "MEDIUM", 3},
		{model.SeverityMinor, "LOW", 7},
		{model.Severity("UNKNOWN"), "MEDIUM", 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			var got map[string]string
			s := New(&mockClient{
				createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
					got = props
					return "701", nil
				},
			}, WithClock(fixedClock(testNow)))

			taskID, err := s.LogSafetyIssue(context.Background(), "Downtown Site", "Floor 3", tt.severity, "Exposed wiring", "")
			require.NoError(t, err)
			assert.Equal(t, "701", taskID)

			assert.Equal(t, tt.wantPriority, got["hs_task_priority"])
			wantDue := testNow.AddDate(0, 0, tt.wantDueDays)
			assert.Equal(t, strconv.FormatInt(wantDue.UnixMilli(), 10), got["hs_timestamp"])
		})
	}
}

func TestLogSafetyIssueTaskContent(t *testing.T) {
	var got map[string]string
	s := New(&mockClient{
		createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
			got = props
			return "701", nil
		},
	}, WithClock(fixedClock(testNow)))

	_, err := s.LogSafetyIssue(context.Background(), "Downtown Site", "Floor 3", model.SeverityCritical, "Exposed wiring near water line", "")
	require.NoError(t, err)

	assert.Equal(t, "CRITICAL Safety Issue: Downtown Site", got["hs_task_subject"])
	body := got["hs_task_body"]
	assert.Contains(t, body, "**Project:** Downtown Site")
	assert.Contains(t, body, "**Location:** Floor 3")
	assert.Contains(t, body, "**Severity:** CRITICAL")
	assert.Contains(t, body, "**Detected:** 2026-08-30 10:30")
	assert.Contains(t, body, "Exposed wiring near water line")
	assert.Contains(t, body, "Immediate inspection and remediation required.")
}

func TestLogSafetyIssueRequiresProject(t *testing.T) {
	s := New(&mockClient{})
	_, err := s.LogSafetyIssue(context.Background(), "", "Floor 3", model.SeverityMinor, "desc", "")
	assert.ErrorContains(t, err, "project name is required")
}

func TestLogSafetyIssueWithContact(t *testing.T) {
	crm := newFakeCRM()
	journal := &fakeJournal{}
	s := New(crm, WithJournal(journal))

	_, err := s.LogSafetyIssue(context.Background(), "Downtown Site", "Floor 3", model.SeverityModerate, "desc", "pm@acme.com")
	require.NoError(t, err)
	assert.Len(t, crm.contacts, 1)
	assert.Len(t, crm.associations, 1)

	var sources []string
	for _, a := range journal.activities {
		sources = append(sources, a.Source)
	}
	assert.Equal(t, []string{"safety-scanner", "safety-scanner"}, sources)
}

func TestLogSafetyIssueRemoteFailure(t *testing.T) {
	s := New(&mockClient{
		createTaskFn: func(ctx context.Context, props map[string]string) (string, error) {
			return "", errors.New("task rejected")
		},
	})
	_, err := s.LogSafetyIssue(context.Background(), "Downtown Site", "", model.SeverityMinor, "desc", "")
	assert.ErrorContains(t, err, "log safety issue")
}
