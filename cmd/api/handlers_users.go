package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/services/permissions"
	"reviewhub/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	if !permissions.StaffOnly(app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	var input struct {
		Search string `schema:"search"`
		filters.Filters
	}
	if !app.decodeQuery(w, r, &input) || !app.validateStruct(w, r, &input) {
		return
	}
	userList, totalRecords, err := app.Services.Users.List(r.Context(), input.Search, input.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"users":    userList,
		"metadata": input.Metadata(totalRecords),
	}, "")
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	if !permissions.StaffOnly(app.contextUser(r)) {
		app.permissionDenied(w, r)
		return
	}
	var input struct {
		Username  string      `json:"username" validate:"required,max=150"`
		Email     string      `json:"email" validate:"required,email,max=254"`
		FirstName string      `json:"first_name" validate:"omitempty,max=150"`
		LastName  string      `json:"last_name" validate:"omitempty,max=150"`
		Role      models.Role `json:"role" validate:"omitempty,oneof=user moderator admin" errorMsg:"Role must be one of: user, moderator, admin"`
		Bio       *string     `json:"bio"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	user, err := app.Services.Users.Create(r.Context(), &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Bio:       input.Bio,
		IsActive:  true,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, "A user with this username or email already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "")
}

// canManageUser reports whether the requester may view or modify the profile
// at the given username: the owner or staff.
func (app *Application) canManageUser(r *http.Request, username string) bool {
	user := app.contextUser(r)
	return user.Username == username || permissions.StaffOnlyObject(user)
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !app.canManageUser(r, username) {
		app.permissionDenied(w, r)
		return
	}
	user, err := app.Services.Users.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

type updateUserInput struct {
	Username  *string      `json:"username" validate:"omitempty,max=150"`
	Email     *string      `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string      `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string      `json:"last_name" validate:"omitempty,max=150"`
	Role      *models.Role `json:"role" validate:"omitempty,oneof=user moderator admin" errorMsg:"Role must be one of: user, moderator, admin"`
	Bio       *string      `json:"bio"`
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	requester := app.contextUser(r)
	if !app.canManageUser(r, username) {
		app.permissionDenied(w, r)
		return
	}
	var input updateUserInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	// only staff may grant or revoke roles
	if input.Role != nil && !requester.IsStaff() {
		app.permissionDenied(w, r)
		return
	}
	user, err := app.Services.Users.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	updated, err := app.Services.Users.Update(r.Context(), user, users.UpdateUserParams{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
		Bio:       input.Bio,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, "A user with this username or email already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": updated}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !app.canManageUser(r, username) {
		app.permissionDenied(w, r)
		return
	}
	if err := app.Services.Users.Delete(r.Context(), username); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) getOwnProfile(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"user": app.contextUser(r)}, "")
}

func (app *Application) updateOwnProfile(w http.ResponseWriter, r *http.Request) {
	requester := app.contextUser(r)
	var input updateUserInput
	if !app.readAndValidate(w, r, &input) {
		return
	}
	// the role field is read-only on the own-profile endpoint, so it is
	// deliberately left out of the update params
	updated, err := app.Services.Users.Update(r.Context(), requester, users.UpdateUserParams{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Bio:       input.Bio,
	})
	if err != nil {
		if errors.Is(err, users.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, "A user with this username or email already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": updated}, "")
}
