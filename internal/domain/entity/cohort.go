package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cohort represents one generated synthetic dataset: the seed, size, and
// effect-size parameters that produced it, plus the resolved event counts.
// Records belonging to a cohort are immutable once written.
type Cohort struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Seed          int64      `gorm:"not null" json:"seed"`
	Size          int        `gorm:"not null" json:"size"`
	Params        JSON       `gorm:"type:jsonb" json:"params,omitempty"`
	EventCount    int        `gorm:"not null" json:"event_count"`
	CensoredCount int        `gorm:"not null" json:"censored_count"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Creator  *User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Records  []PatientRecord `gorm:"foreignKey:CohortID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
	Analyses []Analysis      `gorm:"foreignKey:CohortID;constraint:OnDelete:CASCADE" json:"analyses,omitempty"`
}

func (Cohort) TableName() string {
	return "cohorts"
}
