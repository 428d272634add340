package models

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TitleModel struct {
	DB *pgxpool.Pool
}

// titleRow is the flat shape produced by the aggregated title select: the
// joined category columns are nullable and rating is AVG(reviews.score),
// null for titles without reviews.
type titleRow struct {
	Count        int
	ID           int64
	Name         string
	Year         int32
	Description  *string
	CategoryID   *int64
	CategoryName *string
	CategorySlug *string
	Rating       *float64
}

func (r *titleRow) toTitle() models.Title {
	title := models.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Rating:      r.Rating,
		Genres:      []models.Genre{},
	}
	if r.CategoryID != nil {
		title.Category = &models.Category{ID: *r.CategoryID, Name: *r.CategoryName, Slug: *r.CategorySlug}
	}
	return title
}

const titleSelect = `
	SELECT count(*) OVER(), t.id, t.name, t.year, t.description,
		c.id AS category_id, c.name AS category_name, c.slug AS category_slug,
		round(avg(r.score)::numeric, 1)::float8 AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id`

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	rows, _ := m.DB.Query(ctx, titleSelect+" WHERE t.id = $1 GROUP BY t.id, c.id", id)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	title := row.toTitle()
	genresByTitle, err := m.genresForTitles(ctx, []int64{title.ID})
	if err != nil {
		return nil, err
	}
	if genres, ok := genresByTitle[title.ID]; ok {
		title.Genres = genres
	}
	return &title, nil
}

// List applies the combinable title filters (all ANDed, zero values skipped)
// and orders by descending id regardless of filtering.
func (m *TitleModel) List(ctx context.Context, f filters.TitleFilters) ([]models.Title, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		titleSelect+`
		WHERE (t.name ILIKE '%' || $1 || '%' OR $1 = '')
		AND (t.year = $2 OR $2 = 0)
		AND ($3 = '' OR EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug ILIKE '%' || $3 || '%'
		))
		AND ($4 = '' OR c.slug ILIKE '%' || $4 || '%')
		GROUP BY t.id, c.id
		ORDER BY t.id DESC
		LIMIT $5 OFFSET $6`,
		f.Name, f.Year, f.Genre, f.Category, f.Limit(), f.Offset(),
	)
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Title{}, 0, nil
	}
	titleIDs := make([]int64, 0, len(outputRows))
	for _, row := range outputRows {
		titleIDs = append(titleIDs, row.ID)
	}
	genresByTitle, err := m.genresForTitles(ctx, titleIDs)
	if err != nil {
		return nil, 0, err
	}
	titles := make([]models.Title, 0, len(outputRows))
	for _, row := range outputRows {
		title := row.toTitle()
		if genres, ok := genresByTitle[title.ID]; ok {
			title.Genres = genres
		}
		titles = append(titles, title)
	}
	return titles, outputRows[0].Count, nil
}

func (m *TitleModel) genresForTitles(ctx context.Context, titleIDs []int64) (map[int64][]models.Genre, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT tg.title_id, g.id, g.name, g.slug FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.id`,
		titleIDs,
	)
	defer rows.Close()
	genresByTitle := make(map[int64][]models.Genre)
	for rows.Next() {
		var titleID int64
		var genre models.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, err
		}
		genresByTitle[titleID] = append(genresByTitle[titleID], genre)
	}
	return genresByTitle, rows.Err()
}

func (m *TitleModel) Insert(ctx context.Context, name string, year int32, description *string, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(
		ctx,
		"INSERT INTO titles (name, year, description, category_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, year, description, categoryID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := setTitleGenres(ctx, tx, id, genreIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

// Update overwrites the title row and, when genreIDs is non-nil, replaces the
// genre set.
func (m *TitleModel) Update(ctx context.Context, title *models.Title, categoryID *int64, genreIDs []int64) (*models.Title, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status, err := tx.Exec(
		ctx,
		"UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4 WHERE id = $5",
		title.Name, title.Year, title.Description, categoryID, title.ID,
	)
	if err != nil {
		return nil, err
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	if genreIDs != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM title_genres WHERE title_id = $1", title.ID); err != nil {
			return nil, err
		}
		if err := setTitleGenres(ctx, tx, title.ID, genreIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, title.ID)
}

func setTitleGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)",
			titleID, genreID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
