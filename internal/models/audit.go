/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package models holds the gorm records written by the service.
package models

import "time"

// AuditAction defines the type of audited action.
type AuditAction string

const (
	AuditActionWizardApply  AuditAction = "wizard.apply"
	AuditActionWizardReject AuditAction = "wizard.reject"
	AuditActionSessionStart AuditAction = "session.start"
	AuditActionSessionReset AuditAction = "session.reset"
)

// AuditLog records one interaction with a setup session. The configured
// settings themselves are never stored.
type AuditLog struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"index:idx_audit_timestamp;not null" json:"timestamp"`
	SessionID  string         `gorm:"type:uuid;index:idx_audit_session;not null" json:"session_id"`
	Action     AuditAction    `gorm:"type:varchar(64);index:idx_audit_action;not null" json:"action"`
	ActionType string         `gorm:"type:varchar(64)" json:"action_type,omitempty"` // wizard action type
	Error      string         `gorm:"type:varchar(255)" json:"error,omitempty"`
	Details    map[string]any `gorm:"type:jsonb;serializer:json" json:"details,omitempty"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent  string         `gorm:"type:varchar(512)" json:"user_agent,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName returns the table name for GORM.
func (AuditLog) TableName() string {
	return "audit_logs"
}
