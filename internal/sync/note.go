package sync

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// addNoteToContact creates a timestamped note and associates it with the
// contact. The note is the success criterion; a failed association leaves
// the note in place and is reported through assocOK only.
func (s *Syncer) addNoteToContact(ctx context.Context, contactID, body string) (noteID string, assocOK bool, err error) {
	if contactID == "" {
		return "", false, eris.New("sync: contact id is required for note")
	}

	noteID, err = s.client.CreateNote(ctx, map[string]string{
		"hs_note_body": body,
		"hs_timestamp": s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", false, eris.Wrap(err, "sync: create note")
	}

	if err := s.client.Associate(ctx, hubspot.ObjectNotes, noteID, hubspot.ObjectContacts, contactID); err != nil {
		s.log.Debug("note association failed",
			zap.String("note_id", noteID),
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		return noteID, false, nil
	}
	return noteID, true, nil
}
