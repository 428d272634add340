package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/permissions"
	"reviewhub/proj/internal/services/reviews"
)

func (app *Application) handleReviewErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrTitleNotFound):
		app.Http.NotFound(w, r, "Title not found")
	case errors.Is(err, reviews.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found")
	case errors.Is(err, reviews.ErrReviewAlreadyExists):
		app.Http.BadRequest(w, r, "You have already reviewed this title.")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input filters.Filters
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	reviewList, totalRecords, err := app.Services.Reviews.ListForTitle(r.Context(), titleID, input)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{
		"reviews":  reviewList,
		"metadata": input.Metadata(totalRecords),
	}, "")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := app.Services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, user, 0) {
		app.permissionDenied(w, r)
		return
	}
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input struct {
		Text  string `json:"text" validate:"required"`
		Score int32  `json:"score" validate:"required,gte=1,lte=10" errorMsg:"Score must be an integer from 1 to 10"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	review, err := app.Services.Reviews.Create(r.Context(), titleID, user, input.Text, input.Score)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := app.Services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, app.contextUser(r), review.AuthorID) {
		app.permissionDenied(w, r)
		return
	}
	var input struct {
		Text  *string `json:"text"`
		Score *int32  `json:"score" validate:"omitempty,gte=1,lte=10" errorMsg:"Score must be an integer from 1 to 10"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	updated, err := app.Services.Reviews.Update(r.Context(), titleID, reviewID, reviews.UpdateReviewParams{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": updated}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := app.extractIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := app.Services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, app.contextUser(r), review.AuthorID) {
		app.permissionDenied(w, r)
		return
	}
	if err := app.Services.Reviews.Delete(r.Context(), titleID, reviewID); err != nil {
		app.handleReviewErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
