package sync

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/model"
)

// sourceManual tags journal entries from the direct API (quick actions).
const sourceManual = "manual"

// buildContactProperties assembles the HubSpot property map for an upsert.
// The first name defaults to the email's local part, the fixed lead source
// and status are stamped on, caller extras are overlaid last, and empty
// values are dropped so the remote store never receives blank overwrites.
func buildContactProperties(f model.ContactFields) map[string]string {
	firstname := f.FirstName
	if firstname == "" {
		firstname = strings.SplitN(f.Email, "@", 2)[0]
	}

	props := map[string]string{
		"email":          f.Email,
		"firstname":      firstname,
		"lastname":       f.LastName,
		"phone":          f.Phone,
		"company":        f.Company,
		"lead_source":    model.LeadSource,
		"hs_lead_status": "NEW",
	}
	for k, v := range f.Extra {
		props[k] = v
	}
	for k, v := range props {
		if v == "" {
			delete(props, k)
		}
	}
	return props
}

// UpsertContact creates or updates the contact keyed by email and returns
// its HubSpot ID. The search-before-create order is what keeps the
// one-contact-per-email invariant; repeated calls merge properties with
// last-write-wins per key and never duplicate.
func (s *Syncer) UpsertContact(ctx context.Context, f model.ContactFields) (string, error) {
	return s.upsertContact(ctx, f, sourceManual)
}

func (s *Syncer) upsertContact(ctx context.Context, f model.ContactFields, source string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if f.Email == "" {
		return "", eris.New("sync: contact email is required")
	}

	props := buildContactProperties(f)

	existing, err := s.client.SearchContactByEmail(ctx, f.Email)
	if err != nil {
		return "", eris.Wrap(err, "sync: search contact")
	}

	var contactID string
	if existing != nil {
		if err := s.client.UpdateContact(ctx, existing.ID, props); err != nil {
			return "", eris.Wrapf(err, "sync: update contact %s", existing.ID)
		}
		contactID = existing.ID
		s.log.Debug("contact updated", zap.String("contact_id", contactID), zap.String("email", f.Email))
	} else {
		contactID, err = s.client.CreateContact(ctx, props)
		if err != nil {
			return "", eris.Wrap(err, "sync: create contact")
		}
		s.log.Debug("contact created", zap.String("contact_id", contactID), zap.String("email", f.Email))
	}

	s.record(ctx, model.ActivityContactUpserted, contactID, f.Email, source)
	return contactID, nil
}
