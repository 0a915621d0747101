package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"eballot/internal/apperror"
	"eballot/internal/models"
	"eballot/internal/storage"
)

// UserService handles the one self-service mutation users have: setting
// their institute affiliation.
type UserService struct {
	users      storage.UserStore
	institutes storage.InstituteStore
}

func NewUserService(users storage.UserStore, institutes storage.InstituteStore) *UserService {
	return &UserService{users: users, institutes: institutes}
}

// SetInstitute validates the institute code and records the affiliation.
// Students may set it at most once; repeating the same code is a no-op,
// changing it is a conflict. Admins may re-assign freely.
func (s *UserService) SetInstitute(ctx context.Context, userID uuid.UUID, code string) (*models.User, error) {
	institute, err := s.institutes.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidInput("instituteId", "Invalid institute code")
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleStudent && user.InstituteID != nil && *user.InstituteID != institute.Code {
		return nil, apperror.Conflict("Institute affiliation is already set")
	}

	user.InstituteID = &institute.Code
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("updating institute: %w", err)
	}
	return user, nil
}
