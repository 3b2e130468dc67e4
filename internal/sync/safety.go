package sync

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/se-builders/crm-sync/internal/model"
)

const sourceSafetyScanner = "safety-scanner"

// LogSafetyIssue records a detected safety hazard as a follow-up task.
// Priority and due date follow the severity scheduling policy; unrecognized
// severities fall back to MEDIUM, due in 7 days. An empty contactEmail is
// valid and yields an unassociated task.
func (s *Syncer) LogSafetyIssue(ctx context.Context, project, location string, severity model.Severity, description, contactEmail string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if project == "" {
		return "", eris.New("sync: project name is required")
	}

	sched := severity.Schedule()
	detected := s.now()

	body := fmt.Sprintf(`**Project:** %s
**Location:** %s
**Severity:** %s
**Detected:** %s

**Description:**
%s

**Action Required:**
Immediate inspection and remediation required.

---
*Detected by SE Builders AI Safety Scanner*
`, project, location, severity, detected.Format("2006-01-02 15:04"), description)

	outcome, err := s.createTask(ctx, model.TaskFields{
		Subject:  fmt.Sprintf("%s Safety Issue: %s", severity, project),
		Body:     body,
		Priority: sched.Priority,
		DueDate:  detected.AddDate(0, 0, sched.DueInDays),
	}, contactEmail, sourceSafetyScanner)
	if err != nil {
		return "", eris.Wrap(err, "sync: log safety issue")
	}
	return outcome.ID, nil
}
