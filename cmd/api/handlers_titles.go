package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/permissions"
	"reviewhub/proj/internal/services/titles"
)

func (app *Application) listTitles(w http.ResponseWriter, r *http.Request) {
	var input filters.TitleFilters
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	titleList, totalRecords, err := app.Services.Titles.List(r.Context(), input)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"titles":   titleList,
		"metadata": input.Metadata(totalRecords),
	}, "")
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	title, err := app.Services.Titles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, titles.ErrTitleNotFound) {
			app.Http.NotFound(w, r, "Title not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) createTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	var input struct {
		Name        string   `json:"name" validate:"required,max=200"`
		Year        int32    `json:"year" validate:"required,notfutureyear"`
		Description *string  `json:"description"`
		Genre       []string `json:"genre" validate:"required,min=1,unique,dive,slug"`
		Category    *string  `json:"category" validate:"omitempty,slug"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	title, err := app.Services.Titles.Create(r.Context(), titles.CreateTitleParams{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		app.handleTitleRefErr(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"title": title}, "")
}

func (app *Application) updateTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input struct {
		Name        *string  `json:"name" validate:"omitempty,max=200"`
		Year        *int32   `json:"year" validate:"omitempty,notfutureyear"`
		Description *string  `json:"description"`
		Genre       []string `json:"genre" validate:"omitempty,min=1,unique,dive,slug"`
		Category    *string  `json:"category" validate:"omitempty,slug"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	title, err := app.Services.Titles.Update(r.Context(), id, titles.UpdateTitleParams{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		app.handleTitleRefErr(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) handleTitleRefErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, titles.ErrTitleNotFound):
		app.Http.NotFound(w, r, "Title not found")
	case errors.Is(err, titles.ErrUnknownCategory):
		app.Http.BadRequest(w, r, "Unknown category slug.")
	case errors.Is(err, titles.ErrUnknownGenre):
		app.Http.BadRequest(w, r, "Unknown genre slug.")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) deleteTitle(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	if err := app.Services.Titles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, titles.ErrTitleNotFound) {
			app.Http.NotFound(w, r, "Title not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}
