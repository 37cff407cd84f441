package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogQuery carries the admin search; dates are YYYY-MM-DD and To is inclusive
type AuditLogQuery struct {
	Action string
	UserID *uuid.UUID
	Entity string
	From   string
	To     string
}

type AuditLogResponse struct {
	ID        int64        `json:"id"`
	Action    string       `json:"action"`
	Actor     *UserSummary `json:"actor,omitempty"`
	Entity    string       `json:"entity,omitempty"`
	EntityID  string       `json:"entity_id,omitempty"`
	OldValue  interface{}  `json:"old_value,omitempty"`
	NewValue  interface{}  `json:"new_value,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type AuditLogSummaryResponse struct {
	Total    int64            `json:"total"`
	ByAction map[string]int64 `json:"by_action"`
}
