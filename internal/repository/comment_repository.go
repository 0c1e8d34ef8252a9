package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
)

// CommentWithAuthor carries the author username and like count next to the
// comment row for detail pages.
type CommentWithAuthor struct {
	model.Comment
	AuthorUsername string `json:"author_username"`
	LikeTotal      int64  `json:"like_total"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	Get(ctx context.Context, id string) (*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	ListByRecipe(ctx context.Context, recipeID string) ([]*CommentWithAuthor, error)
	// ListOnRecipesOf lists recent comments left by others on a user's
	// recipes (inbox summary).
	ListOnRecipesOf(ctx context.Context, authorID string, limit int) ([]*CommentWithAuthor, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Get(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

const commentColumns = `comments.*, users.username AS author_username,
	(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = comments.id) AS like_total`

func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID string) ([]*CommentWithAuthor, error) {
	var rows []*CommentWithAuthor
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select(commentColumns).
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.recipe_id = ?", recipeID).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *commentRepository) ListOnRecipesOf(ctx context.Context, authorID string, limit int) ([]*CommentWithAuthor, error) {
	var rows []*CommentWithAuthor
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select(commentColumns).
		Joins("JOIN users ON users.id = comments.author_id").
		Joins("JOIN recipes ON recipes.id = comments.recipe_id").
		Where("recipes.author_id = ? AND comments.author_id <> ?", authorID, authorID).
		Order("comments.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
