package reviews

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type ReviewStorage interface {
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error)
	ExistsForAuthor(ctx context.Context, titleID, authorID int64) (bool, error)
	Insert(ctx context.Context, titleID, authorID int64, text string, score int32) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// TitleProvider verifies that the parent title of a nested route exists.
type TitleProvider interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewStorage
	titles  TitleProvider
}

func New(log *slog.Logger, storage ReviewStorage, titles TitleProvider) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
		titles:  titles,
	}
}

func (s *ReviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *ReviewService) ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	const op = "reviews.ReviewService.ListForTitle"
	log := s.log.With("op", op, "title_id", titleID)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	reviews, totalRecords, err := s.storage.ListForTitle(ctx, titleID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return reviews, totalRecords, nil
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	review, err := s.storage.Get(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// Create enforces the one-review-per-(author, title) rule twice: a pre-check
// here and the unique constraint at the data layer. The constraint is the
// authoritative guard when two requests race past the pre-check.
func (s *ReviewService) Create(ctx context.Context, titleID int64, author *models.User, text string, score int32) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "title_id", titleID, "author_id", author.ID)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	exists, err := s.storage.ExistsForAuthor(ctx, titleID, author.ID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if exists {
		log.Info("duplicate review rejected by pre-check")
		return nil, ErrReviewAlreadyExists
	}
	review, err := s.storage.Insert(ctx, titleID, author.ID, text, score)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("duplicate review rejected by constraint")
			return nil, ErrReviewAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

type UpdateReviewParams struct {
	Text  *string
	Score *int32
}

func (s *ReviewService) Update(ctx context.Context, titleID, reviewID int64, params UpdateReviewParams) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if params.Text != nil {
		review.Text = *params.Text
	}
	if params.Score != nil {
		review.Score = *params.Score
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, titleID, reviewID int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "title_id", titleID, "review_id", reviewID)
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
