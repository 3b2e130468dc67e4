package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/se-builders/crm-sync/internal/model"
)

const sourceClientAssistant = "client-assistant"

// transcriptLimit bounds the note body: older turns are dropped outright,
// not summarized.
const transcriptLimit = 10

// LogConversation records an AI chat conversation as a note on the contact.
// The contact is upserted with a last-interaction stamp; the note body holds
// the summary and the last 10 turns of the transcript. Success means the
// note was created; its association to the contact is best-effort.
func (s *Syncer) LogConversation(ctx context.Context, email string, turns []model.Turn, summary string) (bool, error) {
	if !s.Enabled() {
		return false, ErrDisabled
	}

	contactID, err := s.upsertContact(ctx, model.ContactFields{
		Email: email,
		Extra: map[string]string{
			"last_ai_interaction":  s.now().UTC().Format("2006-01-02"),
			"ai_interaction_count": "1",
		},
	}, sourceClientAssistant)
	if err != nil {
		return false, eris.Wrap(err, "sync: log conversation")
	}

	noteID, _, err := s.addNoteToContact(ctx, contactID, formatTranscript(turns, summary))
	if err != nil {
		return false, eris.Wrap(err, "sync: log conversation")
	}

	s.record(ctx, model.ActivityConversationLogged, noteID, email, sourceClientAssistant)
	return true, nil
}

// formatTranscript renders the note body: summary first, then the tail of
// the transcript with role labels.
func formatTranscript(turns []model.Turn, summary string) string {
	var b strings.Builder
	b.WriteString("**AI Chat Conversation Summary**\n\n")
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n**Full Transcript:**\n\n")

	if len(turns) > transcriptLimit {
		turns = turns[len(turns)-transcriptLimit:]
	}
	for _, turn := range turns {
		label := "Client"
		if turn.Role == model.RoleAssistant {
			label = "AI Assistant"
		}
		fmt.Fprintf(&b, "\n**%s:**\n%s\n", label, turn.Content)
	}
	return b.String()
}
