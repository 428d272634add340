package reviews

import "errors"

var (
	ErrTitleNotFound       = errors.New("title not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("you have already reviewed this title")
)
