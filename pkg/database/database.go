package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/config"
	"github.com/team-maroon/recipify/internal/model"
)

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates all tables. Shared by the server, seeder and tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.FollowRequest{},
		&model.Notification{},
		&model.Recipe{},
		&model.Category{},
		&model.RecipeCategory{},
		&model.Favourite{},
		&model.RecipeLike{},
		&model.Comment{},
		&model.CommentLike{},
		&model.RecipeRating{},
		&model.RecipeView{},
		&model.ShoppingListItem{},
	)
}
