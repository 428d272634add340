package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/comments"
	"reviewhub/proj/internal/services/permissions"
)

func (app *Application) handleCommentErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, comments.ErrReviewNotFound):
		app.Http.NotFound(w, r, "Review not found")
	case errors.Is(err, comments.ErrCommentNotFound):
		app.Http.NotFound(w, r, "Comment not found")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

// commentRouteIDs pulls the titleID/reviewID/commentID params off a nested
// comment route; withCommentID skips the last one for collection endpoints.
func (app *Application) commentRouteIDs(w http.ResponseWriter, r *http.Request, withCommentID bool) (titleID, reviewID, commentID int64, ok bool) {
	if titleID, ok = app.extractIDParam(w, r, "titleID"); !ok {
		return
	}
	if reviewID, ok = app.extractIDParam(w, r, "reviewID"); !ok {
		return
	}
	if withCommentID {
		commentID, ok = app.extractIDParam(w, r, "commentID")
	}
	return
}

func (app *Application) listComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, _, ok := app.commentRouteIDs(w, r, false)
	if !ok {
		return
	}
	var input filters.Filters
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	commentList, totalRecords, err := app.Services.Comments.ListForReview(r.Context(), titleID, reviewID, input)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{
		"comments": commentList,
		"metadata": input.Metadata(totalRecords),
	}, "")
}

func (app *Application) getComment(w http.ResponseWriter, r *http.Request) {
	_, reviewID, commentID, ok := app.commentRouteIDs(w, r, true)
	if !ok {
		return
	}
	comment, err := app.Services.Comments.Get(r.Context(), reviewID, commentID)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, user, 0) {
		app.permissionDenied(w, r)
		return
	}
	titleID, reviewID, _, ok := app.commentRouteIDs(w, r, false)
	if !ok {
		return
	}
	var input struct {
		Text string `json:"text" validate:"required"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	comment, err := app.Services.Comments.Create(r.Context(), titleID, reviewID, user, input.Text)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	_, reviewID, commentID, ok := app.commentRouteIDs(w, r, true)
	if !ok {
		return
	}
	comment, err := app.Services.Comments.Get(r.Context(), reviewID, commentID)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, app.contextUser(r), comment.AuthorID) {
		app.permissionDenied(w, r)
		return
	}
	var input struct {
		Text string `json:"text" validate:"required"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	updated, err := app.Services.Comments.Update(r.Context(), reviewID, commentID, input.Text)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": updated}, "")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	_, reviewID, commentID, ok := app.commentRouteIDs(w, r, true)
	if !ok {
		return
	}
	comment, err := app.Services.Comments.Get(r.Context(), reviewID, commentID)
	if err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	if !permissions.AuthorOrStaffOrReadOnly(r.Method, app.contextUser(r), comment.AuthorID) {
		app.permissionDenied(w, r)
		return
	}
	if err := app.Services.Comments.Delete(r.Context(), reviewID, commentID); err != nil {
		app.handleCommentErr(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
