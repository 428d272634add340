package reviews

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTitles struct {
	ids map[int64]bool
}

func (f *fakeTitles) Get(_ context.Context, id int64) (*models.Title, error) {
	if !f.ids[id] {
		return nil, storage.ErrNotFound
	}
	return &models.Title{ID: id}, nil
}

type fakeReviews struct {
	nextID  int64
	reviews []models.Review
}

func (f *fakeReviews) key(titleID, authorID int64) int {
	for i, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return i
		}
	}
	return -1
}

func (f *fakeReviews) Get(_ context.Context, titleID, reviewID int64) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == reviewID && r.TitleID == titleID {
			return &r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeReviews) ListForTitle(_ context.Context, titleID int64, _ filters.Filters) ([]models.Review, int, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviews) ExistsForAuthor(_ context.Context, titleID, authorID int64) (bool, error) {
	return f.key(titleID, authorID) >= 0, nil
}

func (f *fakeReviews) Insert(_ context.Context, titleID, authorID int64, text string, score int32) (*models.Review, error) {
	// mimics the unique(author_id, title_id) constraint
	if f.key(titleID, authorID) >= 0 {
		return nil, storage.ErrConflict
	}
	f.nextID++
	review := models.Review{
		ID:       f.nextID,
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     text,
		Score:    score,
		PubDate:  time.Now(),
	}
	f.reviews = append(f.reviews, review)
	return &review, nil
}

func (f *fakeReviews) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			f.reviews[i] = *review
			return review, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func newTestService() (*ReviewService, *fakeReviews) {
	reviewsStorage := &fakeReviews{}
	svc := New(slog.Default(), reviewsStorage, &fakeTitles{ids: map[int64]bool{1: true}})
	return svc, reviewsStorage
}

var author = &models.User{ID: 10, Username: "critic", Role: models.RoleUser}

func TestCreateReview(t *testing.T) {
	svc, _ := newTestService()
	review, err := svc.Create(context.Background(), 1, author, "great", 8)
	require.NoError(t, err)
	assert.Equal(t, int32(8), review.Score)
	assert.Equal(t, author.ID, review.AuthorID)
}

func TestCreateReviewMissingTitle(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), 999, author, "great", 8)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestCreateDuplicateReviewRejectedByPreCheck(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), 1, author, "great", 8)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, author, "changed my mind", 3)
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)
}

func TestCreateDuplicateReviewRejectedByConstraint(t *testing.T) {
	svc, reviewsStorage := newTestService()
	// simulate losing the race: the row appears after the pre-check would
	// have passed, so the conflict comes from the insert itself
	reviewsStorage.reviews = append(reviewsStorage.reviews, models.Review{ID: 1, TitleID: 1, AuthorID: author.ID})
	_, err := svc.storage.Insert(context.Background(), 1, author.ID, "again", 5)
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = svc.Create(context.Background(), 1, author, "again", 5)
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)
}

func TestUpdateReviewPartial(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), 1, author, "great", 8)
	require.NoError(t, err)

	newScore := int32(6)
	updated, err := svc.Update(context.Background(), 1, created.ID, UpdateReviewParams{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, int32(6), updated.Score)
	assert.Equal(t, "great", updated.Text)
}

func TestDeleteReviewScopedToTitle(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), 1, author, "great", 8)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))
	_, err = svc.Get(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
