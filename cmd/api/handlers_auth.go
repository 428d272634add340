package main

import (
	"errors"
	"net/http"

	"reviewhub/proj/internal/services/auth"
)

func (app *Application) requestConfirmationCode(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	if err := app.Services.Auth.RequestCode(r.Context(), input.Email); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	// identical ack whether or not the alias is registered
	app.Http.Ok(w, r, nil, "If the email is registered, a confirmation code has been sent.")
}

func (app *Application) obtainToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email            string `json:"email" validate:"required,email"`
		ConfirmationCode string `json:"confirmation_code" validate:"required,len=6,numeric" errorMsg:"Confirmation code must be 6 digits"`
	}
	if !app.readAndValidate(w, r, &input) {
		return
	}
	token, err := app.Services.Auth.ObtainToken(r.Context(), input.Email, input.ConfirmationCode)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.BadRequest(w, r, "Invalid email or confirmation code.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"access": token}, "")
}
