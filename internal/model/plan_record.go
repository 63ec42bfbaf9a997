package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlanRecord 已生成的学期计划 — 对应 plan_records
type PlanRecord struct {
	PlanID           string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`
	StudentID        string         `gorm:"type:uuid;not null;index"                       json:"student_id"`
	SemesterID       string         `gorm:"type:uuid;not null"                             json:"semester_id"`
	RequestedCredits int            `gorm:"not null"                                       json:"requested_credits"`
	Source           string         `gorm:"type:varchar(20);not null"                      json:"source"` // external | fallback
	Valid            bool           `gorm:"not null"                                       json:"valid"`
	TotalCredits     int            `gorm:"not null"                                       json:"total_credits"`
	CompletedCredits int            `gorm:"not null;default:0"                             json:"completed_credits"`
	EligibleCount    int            `gorm:"not null;default:0"                             json:"eligible_count"`
	Assignments      datatypes.JSON `gorm:"type:jsonb;not null"                            json:"assignments"`
	Validation       datatypes.JSON `gorm:"type:jsonb;not null"                            json:"validation"`
	Rationale        *string        `gorm:"type:text"                                      json:"rationale,omitempty"`
	Score            *float64       `                                                      json:"score,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy        *string        `gorm:"type:uuid"                                      json:"created_by,omitempty"`

	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
}

// TableName 指定表名
func (PlanRecord) TableName() string { return "plan_records" }
