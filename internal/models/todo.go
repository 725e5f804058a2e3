package models

import (
	"time"
)

type Todo struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Edited      bool      `gorm:"not null;default:false" json:"edited"`
	CreatedByID uint64    `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"-"`
}

// OwnedBy reports whether userID created the todo.
func (t Todo) OwnedBy(userID uint64) bool {
	return t.CreatedByID == userID
}
