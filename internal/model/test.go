package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestStatus string

const (
	StatusDraft     TestStatus = "DRAFT"
	StatusPublished TestStatus = "PUBLISHED"
	StatusClosed    TestStatus = "CLOSED"
)

type Test struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	Status      TestStatus     `gorm:"not null" json:"status"`
	OwnerID     string         `gorm:"size:36;not null;index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"-"`
	Settings    datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`
	Questions   []Question     `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
