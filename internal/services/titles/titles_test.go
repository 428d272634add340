package titles

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTitleStorage struct {
	titles map[int64]*models.Title
	nextID int64

	lastCategoryID *int64
	lastGenreIDs   []int64
}

func (f *fakeTitleStorage) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, ok := f.titles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *title
	return &copied, nil
}

func (f *fakeTitleStorage) List(ctx context.Context, filters filters.TitleFilters) ([]models.Title, int, error) {
	out := make([]models.Title, 0, len(f.titles))
	for _, title := range f.titles {
		out = append(out, *title)
	}
	return out, len(out), nil
}

func (f *fakeTitleStorage) Insert(ctx context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	f.nextID++
	title := &models.Title{ID: f.nextID, Name: name, Year: year, Description: description}
	f.titles[title.ID] = title
	f.lastCategoryID = categoryID
	f.lastGenreIDs = genreIDs
	return title, nil
}

func (f *fakeTitleStorage) Update(ctx context.Context, title *models.Title, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	if _, ok := f.titles[title.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	f.titles[title.ID] = title
	f.lastCategoryID = categoryID
	f.lastGenreIDs = genreIDs
	return title, nil
}

func (f *fakeTitleStorage) Delete(ctx context.Context, id int64) error {
	if _, ok := f.titles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.titles, id)
	return nil
}

type fakeCatalog struct {
	categories map[string]*models.Category
	genres     map[string]*models.Genre
}

func (f *fakeCatalog) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, ok := f.categories[slug]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeCatalog) GenresBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, ok := f.genres[slug]
		if !ok {
			return nil, catalog.ErrGenreNotFound
		}
		out = append(out, *genre)
	}
	return out, nil
}

func newTestService() (*TitleService, *fakeTitleStorage, *fakeCatalog) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	titleStorage := &fakeTitleStorage{titles: make(map[int64]*models.Title)}
	refs := &fakeCatalog{
		categories: map[string]*models.Category{
			"movie": {ID: 1, Name: "Movie", Slug: "movie"},
		},
		genres: map[string]*models.Genre{
			"drama":  {ID: 10, Name: "Drama", Slug: "drama"},
			"comedy": {ID: 11, Name: "Comedy", Slug: "comedy"},
		},
	}
	return New(log, titleStorage, refs), titleStorage, refs
}

func TestCreateResolvesSlugs(t *testing.T) {
	svc, titleStorage, _ := newTestService()
	category := "movie"
	title, err := svc.Create(context.Background(), CreateTitleParams{
		Name:         "The Test",
		Year:         2001,
		CategorySlug: &category,
		GenreSlugs:   []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Test", title.Name)
	require.NotNil(t, titleStorage.lastCategoryID)
	assert.Equal(t, int64(1), *titleStorage.lastCategoryID)
	assert.Equal(t, []int64{10, 11}, titleStorage.lastGenreIDs)
}

func TestCreateRejectsUnknownRefs(t *testing.T) {
	svc, _, _ := newTestService()
	badCategory := "books"
	_, err := svc.Create(context.Background(), CreateTitleParams{
		Name:         "The Test",
		Year:         2001,
		CategorySlug: &badCategory,
		GenreSlugs:   []string{"drama"},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = svc.Create(context.Background(), CreateTitleParams{
		Name:       "The Test",
		Year:       2001,
		GenreSlugs: []string{"western"},
	})
	assert.ErrorIs(t, err, ErrUnknownGenre)
}

func TestUpdateKeepsCategoryWhenSlugOmitted(t *testing.T) {
	svc, titleStorage, _ := newTestService()
	titleStorage.titles[1] = &models.Title{
		ID:       1,
		Name:     "Old name",
		Year:     1999,
		Category: &models.Category{ID: 1, Name: "Movie", Slug: "movie"},
	}
	newName := "New name"
	updated, err := svc.Update(context.Background(), 1, UpdateTitleParams{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	require.NotNil(t, titleStorage.lastCategoryID)
	assert.Equal(t, int64(1), *titleStorage.lastCategoryID)
	assert.Nil(t, titleStorage.lastGenreIDs)
}

func TestUpdateMissingTitle(t *testing.T) {
	svc, _, _ := newTestService()
	newName := "whatever"
	_, err := svc.Update(context.Background(), 42, UpdateTitleParams{Name: &newName})
	assert.ErrorIs(t, err, ErrTitleNotFound)
}
