package model

import (
	"strings"
	"time"
)

// ChangeType classifies a change entry for downstream styling.
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "create"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

// ChangeEntry is one record in the bounded mutation history.
type ChangeEntry struct {
	ID        string     `json:"id"`
	Entity    string     `json:"entity"`
	Action    string     `json:"action"`
	Details   string     `json:"details,omitempty"`
	Type      ChangeType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
}

// ClassifyAction maps a free-form action label onto a change type: labels
// containing "delete" classify as delete, labels containing "create" or "add"
// as create, everything else as update.
func ClassifyAction(action string) ChangeType {
	label := strings.ToLower(action)
	switch {
	case strings.Contains(label, "delete"):
		return ChangeTypeDelete
	case strings.Contains(label, "create"), strings.Contains(label, "add"):
		return ChangeTypeCreate
	default:
		return ChangeTypeUpdate
	}
}
