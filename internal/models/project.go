package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Project groups entries under an optional client.
type Project struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	ClientID *uint      `json:"client_id"`
	Client   *Client    `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Name     string     `json:"name" gorm:"size:200;not null"`
	AuthorID *uuid.UUID `json:"author_id" gorm:"type:uuid"`
	Author   *User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Entries  []Entry    `json:"entries,omitempty" gorm:"foreignKey:ProjectID"`
}

// String renders the project as "<client> name". Client must be preloaded
// for the client name to show.
func (p Project) String() string {
	client := "no client"
	if p.Client != nil {
		client = p.Client.String()
	}
	return fmt.Sprintf("<%s> %s", client, p.Name)
}
