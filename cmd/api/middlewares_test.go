package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func requestWithUser(method, target string, user *models.User) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	return request.WithContext(context.WithValue(request.Context(), CtxKeyUser, user))
}

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithUser(http.MethodGet, "/", &models.User{
			ID:       1,
			Username: "test",
			Email:    "test@gmail.com",
		})
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := requestWithUser(http.MethodGet, "/", models.AnonymousUser)
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Authentication credentials were not provided.")
	})
}

func TestAuthenticateHeaderHandling(t *testing.T) {
	app := NewTestApplication(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.contextUser(r)
		assert.True(t, user.IsAnonymous())
		w.WriteHeader(http.StatusOK)
	})
	t.Run("no header resolves to anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("malformed header is rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestPermissionDeniedStatus(t *testing.T) {
	app := NewTestApplication(t)
	t.Run("anonymous gets 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		app.permissionDenied(recorder, requestWithUser(http.MethodPost, "/", models.AnonymousUser))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("authenticated gets 403", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		app.permissionDenied(recorder, requestWithUser(http.MethodPost, "/", &models.User{ID: 7, Role: models.RoleUser}))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "You do not have permission to perform this action.")
	})
}
