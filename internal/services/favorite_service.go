package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/models"
	"github.com/charlesng35/favorites/internal/monitoring"
)

// FavoriteService exposes list/get/create/update/delete over the favorites
// table. It keeps no rows between calls; every operation is a round trip to
// the store.
type FavoriteService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFavoriteService constructs a favorite service once a database handle is supplied.
func NewFavoriteService(db *gorm.DB) (*FavoriteService, error) {
	if db == nil {
		return nil, errors.New("favorite service: db is required")
	}
	return &FavoriteService{db: db, now: time.Now}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// ParseFavoriteID converts a path segment into an id. Anything other than a
// positive base-10 integer yields ErrInvalidID.
func ParseFavoriteID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 || id > uint64(maxCursor) {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// List returns one page of favorites.
func (s *FavoriteService) List(ctx context.Context, req PageRequest) (*Page, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}

	page, err := ListPage(ctx, s.db, req)
	if err != nil {
		monitoring.RecordFavoriteOperation("list", "error")
		return nil, err
	}
	monitoring.RecordFavoriteOperation("list", "success")
	monitoring.RecordPageServed(len(page.Data))
	return page, nil
}

// Get loads a single favorite by id.
func (s *FavoriteService) Get(ctx context.Context, id uint) (*models.Favorite, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	if id == 0 {
		return nil, ErrInvalidID
	}

	favorite, err := s.find(ctx, id)
	monitoring.RecordFavoriteOperation("get", resultLabel(err))
	return favorite, err
}

// Create validates input and inserts a new favorite with a store assigned id.
func (s *FavoriteService) Create(ctx context.Context, in CreateFavoriteInput) (*models.Favorite, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	if err := in.Validate(); err != nil {
		monitoring.RecordFavoriteOperation("create", resultLabel(err))
		return nil, err
	}

	favorite := &models.Favorite{
		Title:       in.Title,
		Type:        in.Type,
		Director:    in.Director,
		Budget:      in.Budget,
		Location:    in.Location,
		Duration:    in.Duration,
		YearTime:    in.YearTime,
		Description: in.Description,
	}

	if err := s.db.WithContext(ensuredContext(ctx)).Create(favorite).Error; err != nil {
		monitoring.RecordFavoriteOperation("create", "error")
		return nil, err
	}

	monitoring.RecordFavoriteOperation("create", "success")
	return favorite, nil
}

// Update merges the supplied fields into the stored favorite and returns the
// full updated row.
func (s *FavoriteService) Update(ctx context.Context, id uint, in UpdateFavoriteInput) (*models.Favorite, error) {
	favorite, err := s.update(ctx, id, in)
	monitoring.RecordFavoriteOperation("update", resultLabel(err))
	return favorite, err
}

func (s *FavoriteService) update(ctx context.Context, id uint, in UpdateFavoriteInput) (*models.Favorite, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	if id == 0 {
		return nil, ErrInvalidID
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx = ensuredContext(ctx)
	stored, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Empty() {
		return stored, nil
	}

	merged := MergeFavorite(*stored, in)
	merged.UpdatedAt = s.now()

	// Updates with an explicit column map keeps a row deleted between the
	// read and the write from being recreated.
	result := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       merged.Title,
			"type":        merged.Type,
			"director":    merged.Director,
			"budget":      merged.Budget,
			"location":    merged.Location,
			"duration":    merged.Duration,
			"year_time":   merged.YearTime,
			"description": merged.Description,
			"updated_at":  merged.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrFavoriteNotFound
	}

	return &merged, nil
}

// Delete removes the favorite permanently.
func (s *FavoriteService) Delete(ctx context.Context, id uint) error {
	err := s.delete(ctx, id)
	monitoring.RecordFavoriteOperation("delete", resultLabel(err))
	return err
}

func (s *FavoriteService) delete(ctx context.Context, id uint) error {
	if s == nil {
		return errors.New("favorite service: service not initialised")
	}
	if id == 0 {
		return ErrInvalidID
	}

	result := s.db.WithContext(ensuredContext(ctx)).Delete(&models.Favorite{}, id)
	if result.Error != nil {
		if isOutOfRangeError(result.Error) {
			return ErrFavoriteNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Count returns the number of stored favorites.
func (s *FavoriteService) Count(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, errors.New("favorite service: service not initialised")
	}
	var count int64
	if err := s.db.WithContext(ensuredContext(ctx)).Model(&models.Favorite{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *FavoriteService) find(ctx context.Context, id uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := s.db.WithContext(ensuredContext(ctx)).First(&favorite, "id = ?", id).Error
	switch {
	case err == nil:
		return &favorite, nil
	case errors.Is(err, gorm.ErrRecordNotFound), isOutOfRangeError(err):
		return nil, ErrFavoriteNotFound
	default:
		return nil, err
	}
}

func resultLabel(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &validationErr), errors.Is(err, ErrInvalidID):
		return "invalid"
	case errors.Is(err, ErrFavoriteNotFound):
		return "not_found"
	default:
		return "error"
	}
}
