package domain

import "time"

// SystemUserID is recorded in audit fields when no authenticated user is known.
const SystemUserID = "system"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same user and instant.
func NewAuditFields(userID string, now time.Time) AuditFields {
	if userID == "" {
		userID = SystemUserID
	}
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Touch records an update by userID at now.
func (a *AuditFields) Touch(userID string, now time.Time) {
	if userID == "" {
		userID = SystemUserID
	}
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}
