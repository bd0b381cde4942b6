package model

import (
	"time"

	"gorm.io/datatypes"
)

// StorageRecord is one keyed JSON document, the persistence analog of a
// browser localStorage entry. The whole plan collection lives under one
// key and the settings record under another.
type StorageRecord struct {
	Key       string         `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"          json:"value"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName pins the table name.
func (StorageRecord) TableName() string { return "storage_records" }
