package sync

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/model"
)

const sourceCostEstimator = "cost-estimator"

// estimateNoteLimit caps how much of the estimate text lands in the note.
const estimateNoteLimit = 500

// LogCostEstimate records a generated cost estimate as a deal. The amount is
// supplied by the caller (run the extractor on the estimate text first).
// Contact upsert failure does not block the deal: the deal is still created,
// its association is just skipped. On success the head of the estimate text
// is attached to the contact as a note.
func (s *Syncer) LogCostEstimate(ctx context.Context, email string, est model.EstimateFields, estimateText string, amount float64) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	contactID, err := s.upsertContact(ctx, model.ContactFields{
		Email: email,
		Extra: map[string]string{
			"project_type":     est.FacilityType,
			"project_location": est.Location,
		},
	}, sourceCostEstimator)
	if err != nil {
		s.log.Warn("estimate contact upsert failed, deal proceeds unassociated",
			zap.String("email", email),
			zap.Error(err),
		)
		contactID = ""
	}

	extra := map[string]string{
		"facility_type":    est.FacilityType,
		"project_location": est.Location,
		"project_timeline": est.Timeline,
	}
	if est.SquareFootage > 0 {
		extra["square_footage"] = strconv.Itoa(est.SquareFootage)
	}
	if est.QualityLevel != "" {
		extra["quality_level"] = est.QualityLevel
	}

	outcome, err := s.createDeal(ctx, model.DealFields{
		Name:   est.DealName(),
		Amount: amount,
		Stage:  model.StageAppointmentScheduled,
		Extra:  extra,
	}, "", sourceCostEstimator)
	if err != nil {
		return "", eris.Wrap(err, "sync: log cost estimate")
	}
	dealID := outcome.ID

	if contactID != "" {
		s.associateDeal(ctx, dealID, contactID)

		note := "**Cost Estimate Generated**\n\n" + truncate(estimateText, estimateNoteLimit) +
			"...\n\n[Full estimate attached in documents]"
		if _, _, err := s.addNoteToContact(ctx, contactID, note); err != nil {
			s.log.Warn("estimate note failed",
				zap.String("deal_id", dealID),
				zap.String("contact_id", contactID),
				zap.Error(err),
			)
		}
	}

	return dealID, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
