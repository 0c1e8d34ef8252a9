package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/internal/model"
)

type FollowRequestRepository interface {
	Create(ctx context.Context, requesterID, targetID string) error
	Delete(ctx context.Context, requesterID, targetID string) error
	Exists(ctx context.Context, requesterID, targetID string) (bool, error)
	ListByTarget(ctx context.Context, targetID string) ([]*model.FollowRequest, error)
}

type followRequestRepository struct {
	db *gorm.DB
}

func NewFollowRequestRepository(db *gorm.DB) FollowRequestRepository {
	return &followRequestRepository{db: db}
}

func (r *followRequestRepository) Create(ctx context.Context, requesterID, targetID string) error {
	req := &model.FollowRequest{ID: uuid.New().String(), RequesterID: requesterID, TargetID: targetID}
	// idempotent: re-requesting while pending is not an error
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(req).Error
}

func (r *followRequestRepository) Delete(ctx context.Context, requesterID, targetID string) error {
	return r.db.WithContext(ctx).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Delete(&model.FollowRequest{}).Error
}

func (r *followRequestRepository) Exists(ctx context.Context, requesterID, targetID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.FollowRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRequestRepository) ListByTarget(ctx context.Context, targetID string) ([]*model.FollowRequest, error) {
	var res []*model.FollowRequest
	err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
