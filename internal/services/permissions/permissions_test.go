package permissions

import (
	"net/http"
	"testing"

	"reviewhub/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous   = models.AnonymousUser
	plainUser   = &models.User{ID: 1, Role: models.RoleUser}
	moderator   = &models.User{ID: 2, Role: models.RoleModerator}
	admin       = &models.User{ID: 3, Role: models.RoleAdmin}
	djangoAdmin = &models.User{ID: 4, Role: models.RoleDjangoAdmin}
)

func TestAdminOrReadOnly(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		user    *models.User
		allowed bool
	}{
		{"anonymous GET", http.MethodGet, anonymous, true},
		{"anonymous POST", http.MethodPost, anonymous, false},
		{"plain user POST", http.MethodPost, plainUser, false},
		{"moderator DELETE", http.MethodDelete, moderator, false},
		{"admin POST", http.MethodPost, admin, true},
		{"admin DELETE", http.MethodDelete, admin, true},
		{"django admin POST", http.MethodPost, djangoAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, AdminOrReadOnly(tc.method, tc.user))
		})
	}
}

func TestAuthorOrStaffOrReadOnly(t *testing.T) {
	const authorID = 1
	cases := []struct {
		name    string
		method  string
		user    *models.User
		allowed bool
	}{
		{"anonymous GET", http.MethodGet, anonymous, true},
		{"anonymous POST", http.MethodPost, anonymous, false},
		{"anonymous PATCH", http.MethodPatch, anonymous, false},
		{"any authenticated POST", http.MethodPost, &models.User{ID: 42, Role: models.RoleUser}, true},
		{"author PATCH", http.MethodPatch, plainUser, true},
		{"author DELETE", http.MethodDelete, plainUser, true},
		{"other user PATCH", http.MethodPatch, &models.User{ID: 42, Role: models.RoleUser}, false},
		{"moderator PATCH", http.MethodPatch, moderator, true},
		{"admin DELETE", http.MethodDelete, admin, true},
		{"django admin PATCH", http.MethodPatch, djangoAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, AuthorOrStaffOrReadOnly(tc.method, tc.user, authorID))
		})
	}
}

func TestAuthenticatedOnly(t *testing.T) {
	assert.False(t, AuthenticatedOnly(anonymous))
	assert.False(t, AuthenticatedOnly(nil))
	assert.True(t, AuthenticatedOnly(plainUser))
}

func TestStaffOnlyAsymmetry(t *testing.T) {
	// collection access is admin-gated, object access admits moderators
	assert.False(t, StaffOnly(moderator))
	assert.True(t, StaffOnly(admin))
	assert.True(t, StaffOnlyObject(moderator))
	assert.True(t, StaffOnlyObject(admin))
	assert.False(t, StaffOnly(plainUser))
	assert.False(t, StaffOnlyObject(plainUser))
	assert.False(t, StaffOnlyObject(anonymous))
}
