package comments

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type CommentStorage interface {
	Get(ctx context.Context, reviewID, commentID int64) (*models.Comment, error)
	ListForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error)
	Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewProvider verifies the parent review of a nested comment route,
// scoped to its title.
type ReviewProvider interface {
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
}

type CommentService struct {
	log     *slog.Logger
	storage CommentStorage
	reviews ReviewProvider
}

func New(log *slog.Logger, storage CommentStorage, reviews ReviewProvider) *CommentService {
	return &CommentService{
		log:     log,
		storage: storage,
		reviews: reviews,
	}
}

func (s *CommentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *CommentService) ListForReview(ctx context.Context, titleID, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	const op = "comments.CommentService.ListForReview"
	log := s.log.With("op", op, "review_id", reviewID)
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	comments, totalRecords, err := s.storage.ListForReview(ctx, reviewID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return comments, totalRecords, nil
}

func (s *CommentService) Get(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	const op = "comments.CommentService.Get"
	log := s.log.With("op", op, "review_id", reviewID, "comment_id", commentID)
	comment, err := s.storage.Get(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("comment not found")
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Create(ctx context.Context, titleID, reviewID int64, author *models.User, text string) (*models.Comment, error) {
	const op = "comments.CommentService.Create"
	log := s.log.With("op", op, "review_id", reviewID, "author_id", author.ID)
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Insert(ctx, reviewID, author.ID, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// review deleted between check and insert
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, reviewID, commentID int64, text string) (*models.Comment, error) {
	const op = "comments.CommentService.Update"
	log := s.log.With("op", op, "review_id", reviewID, "comment_id", commentID)
	comment, err := s.Get(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	updated, err := s.storage.Update(ctx, comment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, reviewID, commentID int64) error {
	const op = "comments.CommentService.Delete"
	log := s.log.With("op", op, "review_id", reviewID, "comment_id", commentID)
	comment, err := s.Get(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
