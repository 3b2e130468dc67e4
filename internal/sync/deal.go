package sync

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/model"
	"github.com/se-builders/crm-sync/pkg/hubspot"
)

// closeDateOffsetDays is the fixed target-close horizon stamped on new deals.
const closeDateOffsetDays = 90

// CreateDeal creates a deal in the default pipeline. When contactEmail is
// set, the contact is upserted and the deal associated with it; both steps
// are best-effort and never void the created deal.
func (s *Syncer) CreateDeal(ctx context.Context, f model.DealFields, contactEmail string) (Outcome, error) {
	return s.createDeal(ctx, f, contactEmail, sourceManual)
}

func (s *Syncer) createDeal(ctx context.Context, f model.DealFields, contactEmail, source string) (Outcome, error) {
	if !s.Enabled() {
		return Outcome{}, ErrDisabled
	}
	if f.Name == "" {
		return Outcome{}, eris.New("sync: deal name is required")
	}

	stage := f.Stage
	if stage == "" {
		stage = model.StageAppointmentScheduled
	}

	props := map[string]string{
		"dealname":    f.Name,
		"amount":      strconv.FormatFloat(f.Amount, 'f', -1, 64),
		"dealstage":   string(stage),
		"pipeline":    "default",
		"closedate":   s.now().UTC().AddDate(0, 0, closeDateOffsetDays).Format("2006-01-02"),
		"deal_source": model.LeadSource,
	}
	for k, v := range f.Extra {
		if v != "" {
			props[k] = v
		}
	}

	dealID, err := s.client.CreateDeal(ctx, props)
	if err != nil {
		return Outcome{}, eris.Wrap(err, "sync: create deal")
	}

	outcome := Outcome{ID: dealID, AssociationOK: true}
	if contactEmail != "" {
		contactID, err := s.upsertContact(ctx, model.ContactFields{Email: contactEmail}, source)
		if err != nil {
			s.log.Warn("deal contact upsert failed, association skipped",
				zap.String("deal_id", dealID),
				zap.String("email", contactEmail),
				zap.Error(err),
			)
			outcome.AssociationOK = false
		} else {
			outcome.AssociationOK = s.associateDeal(ctx, dealID, contactID)
		}
	}

	s.record(ctx, model.ActivityDealCreated, dealID, f.Name, source)
	return outcome, nil
}

// associateDeal links a deal to a contact, absorbing failure.
func (s *Syncer) associateDeal(ctx context.Context, dealID, contactID string) bool {
	if err := s.client.Associate(ctx, hubspot.ObjectDeals, dealID, hubspot.ObjectContacts, contactID); err != nil {
		s.log.Debug("deal association failed",
			zap.String("deal_id", dealID),
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		return false
	}
	return true
}
