package titles

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/storage"
)

type TitleStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, f filters.TitleFilters) ([]models.Title, int, error)
	Insert(ctx context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error)
	Update(ctx context.Context, title *models.Title, categoryID *int64, genreIDs []int64) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogProvider resolves category/genre slugs from create and update
// payloads into persisted reference rows.
type CatalogProvider interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GenresBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
}

type TitleService struct {
	log     *slog.Logger
	storage TitleStorage
	catalog CatalogProvider
}

func New(log *slog.Logger, storage TitleStorage, catalogProvider CatalogProvider) *TitleService {
	return &TitleService{
		log:     log,
		storage: storage,
		catalog: catalogProvider,
	}
}

func (s *TitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	const op = "titles.TitleService.Get"
	log := s.log.With("op", op, "id", id)
	title, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("title not found")
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return title, nil
}

// List returns a page of titles with their ratings; each rating is the mean
// review score computed per read, absent for titles without reviews.
func (s *TitleService) List(ctx context.Context, f filters.TitleFilters) ([]models.Title, int, error) {
	const op = "titles.TitleService.List"
	titles, totalRecords, err := s.storage.List(ctx, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return titles, totalRecords, nil
}

type CreateTitleParams struct {
	Name         string
	Year         int32
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

func (s *TitleService) Create(ctx context.Context, params CreateTitleParams) (*models.Title, error) {
	const op = "titles.TitleService.Create"
	log := s.log.With("op", op, "name", params.Name, "year", params.Year)
	categoryID, genreIDs, err := s.resolveRefs(ctx, params.CategorySlug, params.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title, err := s.storage.Insert(ctx, params.Name, params.Year, params.Description, categoryID, genreIDs)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return title, nil
}

type UpdateTitleParams struct {
	Name         *string
	Year         *int32
	Description  *string
	CategorySlug *string
	GenreSlugs   []string // nil keeps the current genre set
}

func (s *TitleService) Update(ctx context.Context, id int64, params UpdateTitleParams) (*models.Title, error) {
	const op = "titles.TitleService.Update"
	log := s.log.With("op", op, "id", id)
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		title.Name = *params.Name
	}
	if params.Year != nil {
		title.Year = *params.Year
	}
	if params.Description != nil {
		title.Description = params.Description
	}
	categoryID, genreIDs, err := s.resolveRefs(ctx, params.CategorySlug, params.GenreSlugs)
	if err != nil {
		return nil, err
	}
	if categoryID == nil && title.Category != nil {
		categoryID = &title.Category.ID
	}
	updated, err := s.storage.Update(ctx, title, categoryID, genreIDs)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *TitleService) resolveRefs(ctx context.Context, categorySlug *string, genreSlugs []string) (*int64, []int64, error) {
	var categoryID *int64
	if categorySlug != nil {
		category, err := s.catalog.CategoryBySlug(ctx, *categorySlug)
		if err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				return nil, nil, ErrUnknownCategory
			}
			return nil, nil, err
		}
		categoryID = &category.ID
	}
	var genreIDs []int64
	if genreSlugs != nil {
		genres, err := s.catalog.GenresBySlugs(ctx, genreSlugs)
		if err != nil {
			if errors.Is(err, catalog.ErrGenreNotFound) {
				return nil, nil, ErrUnknownGenre
			}
			return nil, nil, err
		}
		genreIDs = make([]int64, 0, len(genres))
		for _, genre := range genres {
			genreIDs = append(genreIDs, genre.ID)
		}
	}
	return categoryID, genreIDs, nil
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	const op = "titles.TitleService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("title not found")
			return ErrTitleNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
