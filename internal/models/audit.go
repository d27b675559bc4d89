package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityType tags the kind of record an audit entry refers to.
type EntityType string

const (
	EntityPortfolio EntityType = "portfolio"
	EntityProgram   EntityType = "program"
	EntityDemand    EntityType = "demand"
	EntityProject   EntityType = "project"
	EntityProduct   EntityType = "product"
	EntityUser      EntityType = "user"
)

// ChangeType tags the kind of mutation an audit entry records.
type ChangeType string

const (
	ChangeCreated       ChangeType = "created"
	ChangeUpdated       ChangeType = "updated"
	ChangeDeleted       ChangeType = "deleted"
	ChangeStatusChanged ChangeType = "status_changed"
)

// AuditLog is an append-only record of a mutation. EntityID is a plain string
// rather than a foreign key so the trail stays queryable after the source
// entity is deleted.
type AuditLog struct {
	ID         uuid.UUID       `json:"id"`
	EntityType EntityType      `json:"entityType"`
	EntityID   string          `json:"entityId"`
	ChangeType ChangeType      `json:"changeType"`
	ChangedBy  uuid.UUID       `json:"changedBy"`
	Details    json.RawMessage `json:"details"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewAuditLog builds an entry for a mutation performed by actorID.
func NewAuditLog(entityType EntityType, entityID uuid.UUID, changeType ChangeType, actorID uuid.UUID, details json.RawMessage) *AuditLog {
	return &AuditLog{
		EntityType: entityType,
		EntityID:   entityID.String(),
		ChangeType: changeType,
		ChangedBy:  actorID,
		Details:    details,
	}
}

// CreatedDetails snapshots the full created object.
func CreatedDetails(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// UpdatedDetails records the changed fields as a field-to-new-value map.
func UpdatedDetails(diff map[string]interface{}) json.RawMessage {
	raw, err := json.Marshal(diff)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// DeletedDetails echoes the id of the removed row.
func DeletedDetails(id uuid.UUID) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"id": id.String()})
	return raw
}
