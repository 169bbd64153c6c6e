package models

// DefaultCategoryColor is applied when a category is created or
// updated without an explicit color.
const DefaultCategoryColor = "#CCCCCC"

// Category groups a user's transactions. A transaction without a
// category is a valid, first-class state ("Uncategorized").
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Color  string `gorm:"size:20;default:#CCCCCC" json:"color"`
}
