package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService handles user registration and class list updates.
type UserService struct {
	userRepo UserStore
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo UserStore, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

// Register inserts u unless a user with the same email already exists.
//
// The lookup and the insert are two operations, so two concurrent
// registrations can both pass the lookup. Only a unique index on email
// (migration 000001) turns the loser into ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, u *model.User) (*model.InsertResult, error) {
	_, err := s.userRepo.FindByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, mongo.ErrNoDocuments):
		s.log.Error().Err(err).Str("email", u.Email).Msg("failed to look up user")
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	res, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.log.Warn().Str("email", u.Email).Msg("concurrent registration rejected by unique index")
			return nil, ErrDuplicateUser
		}
		s.log.Error().Err(err).Str("email", u.Email).Msg("failed to insert user")
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return res, nil
}

// SelectClass adds classID to the user's selected classes.
func (s *UserService) SelectClass(ctx context.Context, userID, classID string) (*model.UpdateResult, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.userRepo.AddSelectedClass(ctx, id, classID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("class_id", classID).Msg("failed to select class")
		return nil, err
	}
	return res, nil
}

// EnrollClass adds classID to the user's enrolled classes.
func (s *UserService) EnrollClass(ctx context.Context, userID, classID string) (*model.UpdateResult, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.userRepo.AddEnrolledClass(ctx, id, classID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("class_id", classID).Msg("failed to enroll class")
		return nil, err
	}
	return res, nil
}

// UnselectClass removes classID from the user's selected classes. Removing
// an absent id succeeds with a zero modified count.
func (s *UserService) UnselectClass(ctx context.Context, userID, classID string) (*model.UpdateResult, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.userRepo.RemoveSelectedClass(ctx, id, classID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("class_id", classID).Msg("failed to unselect class")
		return nil, err
	}
	return res, nil
}

// SetRole stores role verbatim.
func (s *UserService) SetRole(ctx context.Context, userID, role string) (*model.UpdateResult, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.userRepo.SetRole(ctx, id, role)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("role", role).Msg("failed to set role")
		return nil, err
	}
	return res, nil
}
