package sync

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/model"
	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// defaultTaskDueDays applies when the caller supplies no due date.
const defaultTaskDueDays = 7

// CreateTask creates a follow-up task. Status is always NOT_STARTED at
// creation. When contactEmail is set, the contact is upserted and the task
// associated best-effort.
func (s *Syncer) CreateTask(ctx context.Context, f model.TaskFields, contactEmail string) (Outcome, error) {
	return s.createTask(ctx, f, contactEmail, sourceManual)
}

func (s *Syncer) createTask(ctx context.Context, f model.TaskFields, contactEmail, source string) (Outcome, error) {
	if !s.Enabled() {
		return Outcome{}, ErrDisabled
	}
	if f.Subject == "" {
		return Outcome{}, eris.New("sync: task subject is required")
	}

	due := f.DueDate
	if due.IsZero() {
		due = s.now().AddDate(0, 0, defaultTaskDueDays)
	}
	priority := f.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	props := map[string]string{
		"hs_task_subject":  f.Subject,
		"hs_task_body":     f.Body,
		"hs_task_status":   "NOT_STARTED",
		"hs_task_priority": string(priority),
		"hs_timestamp":     strconv.FormatInt(due.UnixMilli(), 10),
	}
	if f.Body == "" {
		delete(props, "hs_task_body")
	}

	taskID, err := s.client.CreateTask(ctx, props)
	if err != nil {
		return Outcome{}, eris.Wrap(err, "sync: create task")
	}

	outcome := Outcome{ID: taskID, AssociationOK: true}
	if contactEmail != "" {
		contactID, err := s.upsertContact(ctx, model.ContactFields{Email: contactEmail}, source)
		if err != nil {
			s.log.Warn("task contact upsert failed, association skipped",
				zap.String("task_id", taskID),
				zap.String("email", contactEmail),
				zap.Error(err),
			)
			outcome.AssociationOK = false
		} else if err := s.client.Associate(ctx, hubspot.ObjectTasks, taskID, hubspot.ObjectContacts, contactID); err != nil {
			s.log.Debug("task association failed",
				zap.String("task_id", taskID),
				zap.String("contact_id", contactID),
				zap.Error(err),
			)
			outcome.AssociationOK = false
		}
	}

	s.record(ctx, model.ActivityTaskCreated, taskID, f.Subject, source)
	return outcome, nil
}
