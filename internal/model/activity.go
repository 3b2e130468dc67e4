package model

import "time"

// ActivityKind classifies a journal entry by the CRM record it produced.
type ActivityKind string

const (
	ActivityContactUpserted    ActivityKind = "contact_upserted"
	ActivityDealCreated        ActivityKind = "deal_created"
	ActivityTaskCreated        ActivityKind = "task_created"
	ActivityConversationLogged ActivityKind = "conversation_logged"
)

// Activity is one locally journaled sync outcome. The journal exists for
// operator visibility (recent activity, per-kind counters); HubSpot remains
// the system of record.
type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	ObjectID  string       `json:"object_id"`
	Detail    string       `json:"detail,omitempty"`
	Source    string       `json:"source,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
