package model

import "time"

// Recipe content body. Text fields are opaque to the feed engine except for
// substring search; ingredients are one per line.
type Recipe struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	AuthorID     string `gorm:"type:varchar(36);index:idx_recipe_author;not null"`
	Title        string `gorm:"type:varchar(200);not null"`
	Description  string `gorm:"type:text"`
	Ingredients  string `gorm:"type:text"`
	Instructions string `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (Recipe) TableName() string { return "recipes" }

// Category is a flat tag (no hierarchy). Integer id because the list/search
// API takes repeated integer include/exclude params.
type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Label string `gorm:"type:varchar(100);not null"`
}

func (Category) TableName() string { return "categories" }

// RecipeCategory joins recipes to categories.
type RecipeCategory struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	RecipeID   string `gorm:"type:varchar(36);index:idx_recipe_category_pair,unique;not null"`
	CategoryID uint   `gorm:"not null;index:idx_recipe_category_cat;index:idx_recipe_category_pair,unique"`
}

func (RecipeCategory) TableName() string { return "recipe_categories" }
