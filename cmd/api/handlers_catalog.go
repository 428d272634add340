package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/services/catalog"
	"reviewhub/proj/internal/services/permissions"

	"github.com/go-chi/chi/v5"
)

type catalogListInput struct {
	Search string `schema:"search"`
	filters.Filters
}

type createCatalogItemInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (app *Application) listCategories(w http.ResponseWriter, r *http.Request) {
	var input catalogListInput
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	categories, totalRecords, err := app.Services.Catalog.ListCategories(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"categories": categories,
		"metadata":   input.Metadata(totalRecords),
	}, "")
}

func (app *Application) createCategory(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	var input createCatalogItemInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	category, err := app.Services.Catalog.CreateCategory(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugAlreadyExists) {
			app.Http.BadRequest(w, r, "A category with this slug already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"category": category}, "")
}

func (app *Application) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	if err := app.Services.Catalog.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.Http.NotFound(w, r, "Category not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) listGenres(w http.ResponseWriter, r *http.Request) {
	var input catalogListInput
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	genres, totalRecords, err := app.Services.Catalog.ListGenres(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"genres":   genres,
		"metadata": input.Metadata(totalRecords),
	}, "")
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	var input createCatalogItemInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	genre, err := app.Services.Catalog.CreateGenre(r.Context(), input.Name, input.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugAlreadyExists) {
			app.Http.BadRequest(w, r, "A genre with this slug already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	if !permissions.AdminOrReadOnly(r.Method, app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	if err := app.Services.Catalog.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		if errors.Is(err, catalog.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "Genre not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}
