package database

import (
	"gorm.io/gorm"
)

// CreatedBy restricts a todo query to the rows owned by userID
func CreatedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by_id = ?", userID)
	}
}

// OldestFirst orders rows by insertion
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
