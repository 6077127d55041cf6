package domain

import (
	"github.com/google/uuid"
)

// CommandResult is returned for every accepted command and cached so a
// repeated command id returns the original outcome.
type CommandResult struct {
	CommandID     string      `json:"command_id"`
	AggregateID   uuid.UUID   `json:"aggregate_id"`
	Version       int64       `json:"version"`
	EventIDs      []uuid.UUID `json:"event_ids"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Duplicate     bool        `json:"duplicate"`
}

// ResultFromEvents rebuilds a result from events found by causation id.
func ResultFromEvents(commandID string, events []DomainEvent) CommandResult {
	res := CommandResult{CommandID: commandID, Duplicate: true}
	for _, e := range events {
		res.AggregateID = e.AggregateID
		res.EventIDs = append(res.EventIDs, e.EventID)
		if e.AggregateVersion > res.Version {
			res.Version = e.AggregateVersion
		}
		if res.CorrelationID == "" {
			res.CorrelationID = e.CorrelationID
		}
	}
	return res
}

// BuildCommandKey constructs the cache key for a command result.
func BuildCommandKey(commandID string) string {
	return "cmd:" + commandID
}
