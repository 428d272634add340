package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	app := NewTestApplication(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	app.routes().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, version, body.Version)
}

func withRouteParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for name, value := range params {
		rctx.URLParams.Add(name, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetTitleInvalidID(t *testing.T) {
	app := NewTestApplication(t)
	for _, id := range []string{"abc", "0", "-5"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/titles/"+id, nil)
		request = withRouteParams(request, map[string]string{"titleID": id})
		app.getTitle(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "id %q", id)
	}
}

func TestCreateTitleDeniedForNonAdmins(t *testing.T) {
	app := NewTestApplication(t)
	cases := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{"anonymous", models.AnonymousUser, http.StatusUnauthorized},
		{"regular user", &models.User{ID: 2, Role: models.RoleUser}, http.StatusForbidden},
		{"moderator", &models.User{ID: 3, Role: models.RoleModerator}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := requestWithUser(http.MethodPost, "/v1/titles", tc.user)
			app.createTitle(recorder, request)
			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}

func TestCreateTitleValidation(t *testing.T) {
	app := NewTestApplication(t)
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	cases := []struct {
		name       string
		body       string
		errorField string
	}{
		{"missing name", `{"year": 2000, "genre": ["drama"]}`, "name"},
		{"future year", `{"name": "t", "year": 4000, "genre": ["drama"]}`, "year"},
		{"empty genre list", `{"name": "t", "year": 2000, "genre": []}`, "genre"},
		{"bad genre slug", `{"name": "t", "year": 2000, "genre": ["dra ma"]}`, "genre"},
		{"bad category slug", `{"name": "t", "year": 2000, "genre": ["drama"], "category": "b@d"}`, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/v1/titles", strings.NewReader(tc.body))
			request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, admin))
			app.createTitle(recorder, request)
			require.Equal(t, http.StatusBadRequest, recorder.Code)
			var resp struct {
				Data struct {
					Errors map[string]string `json:"errors"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.Contains(t, resp.Data.Errors, tc.errorField)
		})
	}
}

func TestCreateReviewScoreValidation(t *testing.T) {
	app := NewTestApplication(t)
	user := &models.User{ID: 5, Role: models.RoleUser}
	for _, body := range []string{
		`{"text": "great", "score": 0}`,
		`{"text": "great", "score": 11}`,
		`{"score": 5}`,
	} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/v1/titles/1/reviews", strings.NewReader(body))
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, user))
		request = withRouteParams(request, map[string]string{"titleID": "1"})
		app.createReview(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "body %s", body)
	}
}
