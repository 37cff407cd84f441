package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
)

// AuditLogToResponse lifts the metadata keys written by the audit service into fields
func AuditLogToResponse(entry *entity.AuditLog) *dto.AuditLogResponse {
	if entry == nil {
		return nil
	}

	res := &dto.AuditLogResponse{
		ID:        entry.ID,
		Action:    entry.Action,
		Actor:     UserToSummary(entry.User),
		OldValue:  entry.Metadata["old_value"],
		NewValue:  entry.Metadata["new_value"],
		CreatedAt: entry.CreatedAt,
	}
	res.Entity, _ = entry.Metadata["entity"].(string)
	res.EntityID, _ = entry.Metadata["entity_id"].(string)
	return res
}

func AuditLogsToResponses(entries []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(entries))
	for i := range entries {
		responses[i] = *AuditLogToResponse(&entries[i])
	}
	return responses
}
