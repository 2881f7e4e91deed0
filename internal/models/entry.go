package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a single timed work session on a project.
type Entry struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Start       time.Time  `json:"start" gorm:"not null"`
	Stop        *time.Time `json:"stop"`
	ProjectID   uint       `json:"project_id" gorm:"not null"`
	Project     *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Description string     `json:"description" gorm:"size:200;not null"`
	AuthorID    *uuid.UUID `json:"author_id" gorm:"type:uuid"`
	Author      *User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate defaults Start to the creation time.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.Start.IsZero() {
		e.Start = time.Now()
	}
	return nil
}

// IsFinished reports whether the entry has been stopped.
func (e Entry) IsFinished() bool {
	return e.Stop != nil
}

func (e Entry) String() string {
	stop := "running"
	if e.Stop != nil {
		stop = e.Stop.Format(time.RFC3339)
	}
	project := ""
	if e.Project != nil {
		project = e.Project.Name
	}
	return fmt.Sprintf("[%s - %s] (%s) %s", e.Start.Format(time.RFC3339), stop, project, e.Description)
}
