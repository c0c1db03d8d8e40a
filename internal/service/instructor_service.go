package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/model"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// InstructorService handles instructor lookups.
type InstructorService struct {
	instructorRepo InstructorStore
	classRepo      ClassStore
	cache          ListCache
	log            zerolog.Logger
}

// NewInstructorService creates a new InstructorService.
func NewInstructorService(instructorRepo InstructorStore, classRepo ClassStore, cache ListCache, log zerolog.Logger) *InstructorService {
	return &InstructorService{
		instructorRepo: instructorRepo,
		classRepo:      classRepo,
		cache:          cache,
		log:            log.With().Str("component", "instructor_service").Logger(),
	}
}

// List retrieves all instructors, served from cache when warm.
func (s *InstructorService) List(ctx context.Context) ([]model.Instructor, error) {
	key := config.CacheKey.InstructorListKey()

	var cached []model.Instructor
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("instructor list cache read failed")
	}
	if hit {
		return cached, nil
	}

	instructors, err := s.instructorRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list instructors")
		return nil, err
	}

	if err := s.cache.Set(ctx, key, instructors); err != nil {
		s.log.Warn().Err(err).Msg("instructor list cache write failed")
	}
	return instructors, nil
}

// Detail returns the instructor with each class name replaced by the class
// document of that name. Names are looked up concurrently, once per distinct
// name. A name without a class yields a nil slot; any other lookup failure
// fails the whole call.
func (s *InstructorService) Detail(ctx context.Context, instructorID string) (*model.InstructorDetail, error) {
	id, err := parseID(instructorID)
	if err != nil {
		return nil, err
	}

	ins, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		s.log.Error().Err(err).Str("instructor_id", instructorID).Msg("failed to get instructor")
		return nil, err
	}

	names := lo.Uniq(ins.Classes)
	found := make([]*model.Class, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			c, err := s.classRepo.FindByName(gctx, name)
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("find class %q: %w", name, err)
			}
			found[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("instructor_id", instructorID).Msg("failed to resolve instructor classes")
		return nil, err
	}

	byName := make(map[string]*model.Class, len(names))
	for i, name := range names {
		byName[name] = found[i]
	}

	return &model.InstructorDetail{
		ID: ins.ID,
		Classes: lo.Map(ins.Classes, func(name string, _ int) *model.Class {
			return byName[name]
		}),
		Extra: ins.Extra,
	}, nil
}

// Create inserts an instructor and drops the cached listing. A nil class
// list is stored as an empty array.
func (s *InstructorService) Create(ctx context.Context, i *model.Instructor) (*model.InsertResult, error) {
	if i.Classes == nil {
		i.Classes = []string{}
	}
	res, err := s.instructorRepo.Create(ctx, i)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create instructor")
		return nil, err
	}
	if err := s.cache.Delete(ctx, config.CacheKey.InstructorListKey()); err != nil {
		s.log.Warn().Err(err).Msg("instructor list cache invalidation failed")
	}
	return res, nil
}
