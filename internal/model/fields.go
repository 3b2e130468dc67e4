// Package model defines the CRM entity field sets and enumerations shared
// across the sync layer.
package model

import (
	"strings"
	"time"
)

// LeadSource is stamped onto every contact created or updated by this layer.
const LeadSource = "SE Builders AI Platform"

// DealStage is a HubSpot default-pipeline stage ID.
type DealStage string

const (
	StageAppointmentScheduled  DealStage = "appointmentscheduled"
	StageQualifiedToBuy        DealStage = "qualifiedtobuy"
	StagePresentationScheduled DealStage = "presentationscheduled"
	StageDecisionMakerBoughtIn DealStage = "decisionmakerboughtin"
	StageContractSent          DealStage = "contractsent"
	StageClosedWon             DealStage = "closedwon"
	StageClosedLost            DealStage = "closedlost"
)

// DealStages lists the valid stages in pipeline order.
var DealStages = []DealStage{
	StageAppointmentScheduled,
	StageQualifiedToBuy,
	StagePresentationScheduled,
	StageDecisionMakerBoughtIn,
	StageContractSent,
	StageClosedWon,
	StageClosedLost,
}

// ParseDealStage normalizes a stage string. Returns false if the stage is
// not one of the default pipeline stages.
func ParseDealStage(s string) (DealStage, bool) {
	stage := DealStage(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DealStages {
		if stage == known {
			return known, true
		}
	}
	return "", false
}

// ContactFields holds the writable fields for a contact upsert. Email is the
// natural key; everything else is optional. Extra carries caller-supplied
// HubSpot properties and is overlaid last (last-write-wins per key).
type ContactFields struct {
	Email     string            `json:"email"`
	FirstName string            `json:"first_name,omitempty"`
	LastName  string            `json:"last_name,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Company   string            `json:"company,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// DealFields holds the writable fields for a deal.
type DealFields struct {
	Name   string            `json:"name"`
	Amount float64           `json:"amount"`
	Stage  DealStage         `json:"stage"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// TaskFields holds the writable fields for a follow-up task. A zero DueDate
// means "one week out" at creation time.
type TaskFields struct {
	Subject  string       `json:"subject"`
	Body     string       `json:"body,omitempty"`
	Priority TaskPriority `json:"priority"`
	DueDate  time.Time    `json:"due_date,omitzero"`
}

// EstimateFields holds the structured parameters of a generated cost
// estimate, recorded on both the deal and the originating contact.
type EstimateFields struct {
	FacilityType  string `json:"facility_type"`
	SquareFootage int    `json:"square_footage,omitempty"`
	Location      string `json:"location"`
	Timeline      string `json:"timeline,omitempty"`
	QualityLevel  string `json:"quality_level,omitempty"`
}

// DealName derives the deal name from the estimate parameters.
func (e EstimateFields) DealName() string {
	facility := e.FacilityType
	if facility == "" {
		facility = "Project"
	}
	location := e.Location
	if location == "" {
		location = "TBD"
	}
	return facility + " - " + location
}
