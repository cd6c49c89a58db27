package core

import (
	"time"
)

// Email represents a parsed email message
type Email struct {
	From       string
	To         []string
	Subject    string
	Body       string
	Headers    map[string][]string
	ReceivedAt time.Time
}

// RoutingTarget is the closed set of systems an email can be routed to
type RoutingTarget string

const (
	// TargetGeminiKnight routes to the remediation agent
	TargetGeminiKnight RoutingTarget = "gemini_knight"
	// TargetUser routes a summary notification back to the user
	TargetUser RoutingTarget = "user"
	// TargetLumoArchitect routes to the constraints service
	TargetLumoArchitect RoutingTarget = "lumo_architect"
	// TargetUnknown is returned for any unrecognized target value
	TargetUnknown RoutingTarget = "unknown"
)

// ParseRoutingTarget maps a raw target string onto the closed target set.
// Anything outside the known set collapses to TargetUnknown, which callers
// must handle explicitly.
func ParseRoutingTarget(s string) RoutingTarget {
	switch RoutingTarget(s) {
	case TargetGeminiKnight, TargetUser, TargetLumoArchitect:
		return RoutingTarget(s)
	default:
		return TargetUnknown
	}
}

// RoutingDecision represents the classifier's verdict for a single email
type RoutingDecision struct {
	Target       RoutingTarget
	Action       string
	Raw          string
	ModelUsed    string
	ClassifiedAt time.Time
}

// ActionStatus is the terminal status of a dispatched action
type ActionStatus string

const (
	StatusExecuted ActionStatus = "executed"
	StatusFailed   ActionStatus = "failed"
)

// ActionResult is the terminal outcome of routing a single email
type ActionResult struct {
	Status ActionStatus  `json:"status"`
	Target RoutingTarget `json:"target"`
}

// LedgerEntry is a single audit record of a routing decision
type LedgerEntry struct {
	Sender   string
	Target   RoutingTarget
	RoutedAt time.Time
}
