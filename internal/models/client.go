package models

import "github.com/google/uuid"

// Client is a billable party that owns projects.
type Client struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:200;not null"`
	// AuthorID is nullable because rows created before authorship was tracked have none.
	AuthorID *uuid.UUID `json:"author_id" gorm:"type:uuid"`
	Author   *User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Projects []Project  `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
}

func (c Client) String() string {
	return c.Name
}
