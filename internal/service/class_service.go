package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedkhaled004/school-academy-backend/internal/config"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ClassService handles class business logic. The public catalog is served
// from Redis so browsing traffic stays off PostgreSQL; writes invalidate it.
type ClassService struct {
	classRepo  *repository.ClassRepository
	rdb        *redis.Client
	catalogTTL time.Duration
	log        zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, rdb *redis.Client, catalogTTL time.Duration, log zerolog.Logger) *ClassService {
	return &ClassService{
		classRepo:  classRepo,
		rdb:        rdb,
		catalogTTL: catalogTTL,
		log:        log.With().Str("component", "class_service").Logger(),
	}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes directly from the database (admin view).
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// ListByTeacher retrieves all classes taught by a teacher.
func (s *ClassService) ListByTeacher(ctx context.Context, teacherID int) ([]model.Class, error) {
	return s.classRepo.ListByTeacher(ctx, teacherID)
}

// PublicCatalog returns the class catalog, preferring the Redis copy and
// falling back to PostgreSQL (with a self-heal re-set) on a cache miss.
func (s *ClassService) PublicCatalog(ctx context.Context) ([]model.Class, error) {
	val, err := s.rdb.Get(ctx, config.CacheKey.ClassCatalogKey()).Result()
	if err == nil {
		var classes []model.Class
		if err := json.Unmarshal([]byte(val), &classes); err == nil {
			return classes, nil
		}
		// Corrupt entry; fall through and rebuild.
		s.log.Warn().Msg("Discarding unreadable catalog cache entry")
	} else if !errors.Is(err, redis.Nil) {
		// Redis is unreachable; keep the site up from the database.
		s.log.Warn().Err(err).Msg("Catalog cache read failed, serving from database")
		return s.classRepo.List(ctx)
	}

	return s.RefreshCatalog(ctx)
}

// RefreshCatalog rebuilds the catalog cache from the database and returns it.
func (s *ClassService) RefreshCatalog(ctx context.Context) ([]model.Class, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	payload, err := json.Marshal(classes)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.ClassCatalogKey(), payload, s.catalogTTL).Err(); err != nil {
		// Not fatal; the next request rebuilds again.
		s.log.Warn().Err(err).Msg("Catalog cache write failed")
	}

	return classes, nil
}

// Create creates a new class and invalidates the catalog cache.
func (s *ClassService) Create(ctx context.Context, class *model.Class) error {
	if err := s.classRepo.Create(ctx, class); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Update modifies an existing class and invalidates the catalog cache.
func (s *ClassService) Update(ctx context.Context, class *model.Class) error {
	if err := s.classRepo.Update(ctx, class); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Delete removes a class. Foreign keys on access_codes and enrollments
// prevent deleting a class that is still referenced; the handler maps that
// to a conflict response.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ClassService) invalidateCatalog(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.ClassCatalogKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
