package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
	"github.com/team-maroon/recipify/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// ProfileInput is the editable slice of a user profile.
type ProfileInput struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Bio       string `json:"bio" binding:"max=300"`
	IsPrivate bool   `json:"is_private"`
}

// UserService covers account lookup and profile updates. The privacy flag
// transition is delegated to the relationship service so the pending-request
// bulk resolution commits atomically with the flag.
type UserService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error)
	// Authenticate verifies the password and returns the user.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Search(ctx context.Context, query string) ([]*model.User, error)
	// UpdateProfile saves the editable fields; a private -> public flip also
	// resolves pending follow requests and reports how many.
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (resolvedRequests int, err error)
}

type userService struct {
	userRepo repository.UserRepository
	rel      RelationshipService
}

func NewUserService(userRepo repository.UserRepository, rel RelationshipService) UserService {
	return &userService{userRepo: userRepo, rel: rel}
}

func (s *userService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, query string) ([]*model.User, error) {
	return s.userRepo.Search(ctx, query)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (int, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Bio = in.Bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return 0, err
	}

	if user.IsPrivate == in.IsPrivate {
		return 0, nil
	}
	// SetPrivacy owns the flag write so the private -> public bulk
	// resolution is atomic with it
	return s.rel.SetPrivacy(ctx, userID, in.IsPrivate)
}
