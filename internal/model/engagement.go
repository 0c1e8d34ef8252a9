package model

import "time"

// Favourite marks a recipe saved by a user.
type Favourite struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);index:idx_favourite_user;index:idx_favourite_pair,unique;not null"`
	RecipeID  string `gorm:"type:varchar(36);not null;index:idx_favourite_recipe;index:idx_favourite_pair,unique"`
	CreatedAt time.Time
}

func (Favourite) TableName() string { return "favourites" }

// RecipeLike is a like on a recipe. Likes do not fan out notifications.
type RecipeLike struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);index:idx_recipe_like_user;index:idx_recipe_like_pair,unique;not null"`
	RecipeID  string `gorm:"type:varchar(36);not null;index:idx_recipe_like_recipe;index:idx_recipe_like_pair,unique"`
	CreatedAt time.Time
}

func (RecipeLike) TableName() string { return "recipe_likes" }

// Comment on a recipe.
type Comment struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	RecipeID  string `gorm:"type:varchar(36);index:idx_comment_recipe;not null"`
	AuthorID  string `gorm:"type:varchar(36);index:idx_comment_author;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Comment) TableName() string { return "comments" }

// CommentLike is a like on a comment.
type CommentLike struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);index:idx_comment_like_pair,unique;not null"`
	CommentID string `gorm:"type:varchar(36);not null;index:idx_comment_like_comment;index:idx_comment_like_pair,unique"`
	CreatedAt time.Time
}

func (CommentLike) TableName() string { return "comment_likes" }

// RecipeRating is a user's 1-5 star rating of a recipe. One row per
// (recipe, user); a later write replaces the value.
type RecipeRating struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	RecipeID string `gorm:"type:varchar(36);index:idx_rating_pair,unique;not null"`
	UserID   string `gorm:"type:varchar(36);not null;index:idx_rating_user;index:idx_rating_pair,unique"`
	Rating   int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RecipeRating) TableName() string { return "recipe_ratings" }

// RecipeView records that a user opened a recipe; feeds the explore shelves.
type RecipeView struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	RecipeID  string `gorm:"type:varchar(36);index:idx_view_recipe;index:idx_view_pair,unique;not null"`
	UserID    string `gorm:"type:varchar(36);not null;index:idx_view_user;index:idx_view_pair,unique"`
	CreatedAt time.Time
}

func (RecipeView) TableName() string { return "recipe_views" }
