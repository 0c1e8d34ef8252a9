package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/team-maroon/recipify/internal/cache"
	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
	"github.com/team-maroon/recipify/pkg/logger"
)

// FollowState is the relationship of an ordered (viewer, target) pair.
// Exactly one state holds at any time.
type FollowState string

const (
	StateNone      FollowState = "none"
	StatePending   FollowState = "pending"
	StateFollowing FollowState = "following"
)

// FollowStatus is the descriptor the profile page renders its follow button
// from. When FollowRequestRequired is set the caller must not receive the
// target's recipes or interest sections.
type FollowStatus struct {
	IsMe                  bool `json:"is_me"`
	IsFollowing           bool `json:"is_following"`
	RequestSent           bool `json:"request_sent"`
	RequestReceived       bool `json:"request_received"`
	FollowRequestRequired bool `json:"follow_request_required"`
}

// CanViewProfile reports whether the viewer may see the target's recipes and
// interest sections.
func (s FollowStatus) CanViewProfile() bool { return !s.FollowRequestRequired }

// RelationshipService drives the follow state machine. Every mutation and
// its notification side effect commit as one transaction.
type RelationshipService interface {
	// Toggle advances the (viewer, target) pair one step:
	// following -> none (silent), pending -> none (request + notification
	// revoked), none -> pending for private targets, none -> following for
	// public ones. Toggling yourself is a no-op.
	Toggle(ctx context.Context, viewerID, targetID string) (FollowState, error)
	// Accept resolves a pending request into a follow edge.
	Accept(ctx context.Context, requesterID, userID string) error
	// Decline consumes a pending request without creating an edge.
	Decline(ctx context.Context, requesterID, userID string) error
	// SetPrivacy updates the flag; flipping private -> public resolves every
	// inbound pending request into a follow edge atomically with the update.
	SetPrivacy(ctx context.Context, userID string, isPrivate bool) (resolved int, err error)
	// Status computes the follow descriptor for a viewer (may be anonymous,
	// viewerID == "") looking at a target.
	Status(ctx context.Context, viewerID string, target *model.User) (FollowStatus, error)
	Followers(ctx context.Context, userID string) ([]*model.User, error)
	Following(ctx context.Context, userID string) ([]*model.User, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	ListRequests(ctx context.Context, targetID string) ([]*model.FollowRequest, error)
}

type relationshipService struct {
	db          *gorm.DB
	followRepo  repository.FollowRepository
	requestRepo repository.FollowRequestRepository
	userRepo    repository.UserRepository
	cache       *cache.FollowerCache // optional
}

func NewRelationshipService(db *gorm.DB, followRepo repository.FollowRepository, requestRepo repository.FollowRequestRepository, userRepo repository.UserRepository, fc *cache.FollowerCache) RelationshipService {
	return &relationshipService{db: db, followRepo: followRepo, requestRepo: requestRepo, userRepo: userRepo, cache: fc}
}

func (s *relationshipService) Toggle(ctx context.Context, viewerID, targetID string) (FollowState, error) {
	if viewerID == targetID {
		// self-follow forbidden; deliberately not an error
		return StateNone, nil
	}

	var state FollowState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.User
		if err := tx.Where("id = ?", targetID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var following int64
		if err := tx.Model(&model.Follow{}).
			Where("follower_id = ? AND followee_id = ?", viewerID, targetID).
			Count(&following).Error; err != nil {
			return err
		}
		if following > 0 {
			// unfollow is silent: no notification to revoke
			state = StateNone
			return tx.Where("follower_id = ? AND followee_id = ?", viewerID, targetID).
				Delete(&model.Follow{}).Error
		}

		var pending int64
		if err := tx.Model(&model.FollowRequest{}).
			Where("requester_id = ? AND target_id = ?", viewerID, targetID).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			// cancel: the request and its notification die together
			if err := tx.Where("requester_id = ? AND target_id = ?", viewerID, targetID).
				Delete(&model.FollowRequest{}).Error; err != nil {
				return err
			}
			state = StateNone
			return revokeNotificationTx(tx, targetID, viewerID, model.NotificationRequest, model.TargetNone, "")
		}

		if target.IsPrivate {
			req := &model.FollowRequest{ID: uuid.New().String(), RequesterID: viewerID, TargetID: targetID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(req)
			if res.Error != nil {
				return res.Error
			}
			state = StatePending
			if res.RowsAffected == 0 {
				// lost a race against an identical request; already pending
				return nil
			}
			return notifyTx(tx, targetID, viewerID, model.NotificationRequest, model.TargetNone, "")
		}

		edge := &model.Follow{ID: uuid.New().String(), FollowerID: viewerID, FolloweeID: targetID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
		if res.Error != nil {
			return res.Error
		}
		state = StateFollowing
		if res.RowsAffected == 0 {
			return nil
		}
		return notifyTx(tx, targetID, viewerID, model.NotificationFollow, model.TargetNone, "")
	})
	if err != nil {
		return StateNone, err
	}
	s.invalidate(ctx, viewerID, targetID)
	return state, nil
}

func (s *relationshipService) Accept(ctx context.Context, requesterID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return resolveRequestTx(tx, requesterID, userID, true)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, requesterID, userID)
	return nil
}

func (s *relationshipService) Decline(ctx context.Context, requesterID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return resolveRequestTx(tx, requesterID, userID, false)
	})
}

// resolveRequestTx consumes a pending (requester -> user) request, creating
// the follow edge when accept is set. The matching request notification is
// revoked in the same transaction.
func resolveRequestTx(tx *gorm.DB, requesterID, userID string, accept bool) error {
	res := tx.Where("requester_id = ? AND target_id = ?", requesterID, userID).
		Delete(&model.FollowRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if accept {
		edge := &model.Follow{ID: uuid.New().String(), FollowerID: requesterID, FolloweeID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
			return err
		}
	}
	return revokeNotificationTx(tx, userID, requesterID, model.NotificationRequest, model.TargetNone, "")
}

func (s *relationshipService) SetPrivacy(ctx context.Context, userID string, isPrivate bool) (int, error) {
	resolved := 0
	requesters := []string{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if user.IsPrivate && !isPrivate {
			// going public approves everything pending, all-or-nothing
			var reqs []model.FollowRequest
			if err := tx.Where("target_id = ?", userID).Find(&reqs).Error; err != nil {
				return err
			}
			for _, req := range reqs {
				edge := &model.Follow{ID: uuid.New().String(), FollowerID: req.RequesterID, FolloweeID: userID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
					return err
				}
				if err := revokeNotificationTx(tx, userID, req.RequesterID, model.NotificationRequest, model.TargetNone, ""); err != nil {
					return err
				}
				requesters = append(requesters, req.RequesterID)
			}
			if err := tx.Where("target_id = ?", userID).Delete(&model.FollowRequest{}).Error; err != nil {
				return err
			}
			resolved = len(reqs)
		}

		return tx.Model(&model.User{}).Where("id = ?", userID).Update("is_private", isPrivate).Error
	})
	if err != nil {
		return 0, err
	}
	if resolved > 0 {
		logger.Info("privacy flip resolved pending follow requests",
			zap.String("user", userID), zap.Int("resolved", resolved))
		s.invalidate(ctx, append(requesters, userID)...)
	}
	return resolved, nil
}

func (s *relationshipService) Status(ctx context.Context, viewerID string, target *model.User) (FollowStatus, error) {
	st := FollowStatus{}
	if viewerID != "" {
		st.IsMe = viewerID == target.ID
		if !st.IsMe {
			var err error
			if st.IsFollowing, err = s.followRepo.Exists(ctx, viewerID, target.ID); err != nil {
				return st, err
			}
			if st.RequestSent, err = s.requestRepo.Exists(ctx, viewerID, target.ID); err != nil {
				return st, err
			}
			if st.RequestReceived, err = s.requestRepo.Exists(ctx, target.ID, viewerID); err != nil {
				return st, err
			}
		}
	}
	st.FollowRequestRequired = target.IsPrivate && !st.IsMe && !st.IsFollowing
	return st, nil
}

func (s *relationshipService) Followers(ctx context.Context, userID string) ([]*model.User, error) {
	var (
		ids []string
		err error
	)
	cached := false
	if s.cache != nil {
		ids, cached = s.cache.GetFollowerIDs(ctx, userID)
	}
	if !cached {
		if ids, err = s.followRepo.ListFollowerIDs(ctx, userID); err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetFollowerIDs(ctx, userID, ids)
		}
	}
	return s.usersInOrder(ctx, ids)
}

func (s *relationshipService) Following(ctx context.Context, userID string) ([]*model.User, error) {
	var (
		ids []string
		err error
	)
	cached := false
	if s.cache != nil {
		ids, cached = s.cache.GetFollowingIDs(ctx, userID)
	}
	if !cached {
		if ids, err = s.followRepo.ListFollowingIDs(ctx, userID); err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetFollowingIDs(ctx, userID, ids)
		}
	}
	return s.usersInOrder(ctx, ids)
}

func (s *relationshipService) Counts(ctx context.Context, userID string) (int64, int64, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (s *relationshipService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return s.followRepo.ListFollowingIDs(ctx, userID)
}

func (s *relationshipService) ListRequests(ctx context.Context, targetID string) ([]*model.FollowRequest, error) {
	return s.requestRepo.ListByTarget(ctx, targetID)
}

// usersInOrder loads users in one query and restores the id-list order.
func (s *relationshipService) usersInOrder(ctx context.Context, ids []string) ([]*model.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *relationshipService) invalidate(ctx context.Context, userIDs ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userIDs...)
	}
}
