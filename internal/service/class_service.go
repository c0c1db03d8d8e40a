package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/model"
)

// ClassService handles class listing and updates.
type ClassService struct {
	classRepo ClassStore
	cache     ListCache
	log       zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo ClassStore, cache ListCache, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		cache:     cache,
		log:       log.With().Str("component", "class_service").Logger(),
	}
}

// List retrieves all classes, served from cache when warm.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	key := config.CacheKey.ClassListKey()

	var cached []model.Class
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("class list cache read failed")
	}
	if hit {
		return cached, nil
	}

	classes, err := s.classRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list classes")
		return nil, err
	}

	if err := s.cache.Set(ctx, key, classes); err != nil {
		s.log.Warn().Err(err).Msg("class list cache write failed")
	}
	return classes, nil
}

// Create inserts c as given.
func (s *ClassService) Create(ctx context.Context, c *model.Class) (*model.InsertResult, error) {
	res, err := s.classRepo.Create(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Str("name", c.Name()).Msg("failed to create class")
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

// SetStatus stores status verbatim.
func (s *ClassService) SetStatus(ctx context.Context, classID, status string) (*model.UpdateResult, error) {
	id, err := parseID(classID)
	if err != nil {
		return nil, err
	}
	res, err := s.classRepo.SetStatus(ctx, id, status)
	if err != nil {
		s.log.Error().Err(err).Str("class_id", classID).Str("status", status).Msg("failed to set class status")
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

// TakeSeat decrements availableSeats by one. It does not check that a seat
// is left, so the count can go negative.
func (s *ClassService) TakeSeat(ctx context.Context, classID string) (*model.UpdateResult, error) {
	id, err := parseID(classID)
	if err != nil {
		return nil, err
	}
	res, err := s.classRepo.DecrementSeats(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("class_id", classID).Msg("failed to decrement seats")
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *ClassService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, config.CacheKey.ClassListKey()); err != nil {
		s.log.Warn().Err(err).Msg("class list cache invalidation failed")
	}
}
