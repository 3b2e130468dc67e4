package model

import "strings"

// Severity classifies how urgent a detected safety issue is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityModerate Severity = "MODERATE"
	SeverityMinor    Severity = "MINOR"
)

// TaskPriority is a HubSpot task priority value.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// TaskSchedule pairs a task priority with a due-date offset in days.
type TaskSchedule struct {
	Priority  TaskPriority
	DueInDays int
}

// severitySchedules is the scheduling policy table. Severities not in the
// table get defaultSchedule.
var severitySchedules = map[Severity]TaskSchedule{
	SeverityCritical: {Priority: PriorityHigh, DueInDays: 1},
	SeverityModerate: {Priority: PriorityMedium, DueInDays: 3},
	SeverityMinor:    {Priority: PriorityLow, DueInDays: 7},
}

var defaultSchedule = TaskSchedule{Priority: PriorityMedium, DueInDays: 7}

// Schedule returns the task priority and due-date offset for a severity.
// Unrecognized severities fall back to MEDIUM priority, due in 7 days.
func (s Severity) Schedule() TaskSchedule {
	if sched, ok := severitySchedules[s]; ok {
		return sched
	}
	return defaultSchedule
}

// ParseSeverity normalizes a severity string. Returns false for anything
// other than the three recognized levels.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := severitySchedules[sev]; ok {
		return sev, true
	}
	return "", false
}

// ParsePriority normalizes a task priority string. Returns false for
// anything other than HIGH, MEDIUM, or LOW.
func ParsePriority(s string) (TaskPriority, bool) {
	switch p := TaskPriority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	default:
		return "", false
	}
}
