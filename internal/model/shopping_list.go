package model

import "time"

// ShoppingListItem is one line on a user's shopping list, optionally traced
// back to the recipe it was imported from.
type ShoppingListItem struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	UserID         string `gorm:"type:varchar(36);index:idx_shopping_user;index:idx_shopping_user_name,unique;not null"`
	SourceRecipeID string `gorm:"type:varchar(36)"`
	Name           string `gorm:"type:varchar(255);not null;index:idx_shopping_user_name,unique"`
	Notes          string `gorm:"type:varchar(255)"`
	IsChecked      bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
}

func (ShoppingListItem) TableName() string { return "shopping_list_items" }
