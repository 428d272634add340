// Package permissions holds the request authorization policies as pure
// predicates over (HTTP method, authenticated user, target object). Handlers
// translate a false result into a uniform forbidden response.
package permissions

import (
	"net/http"

	"reviewhub/proj/internal/domain/models"
)

func isReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly allows reads to anyone and writes to admins only.
func AdminOrReadOnly(method string, user *models.User) bool {
	if isReadMethod(method) {
		return true
	}
	return user.IsAdmin()
}

// AuthorOrStaffOrReadOnly allows reads to anyone and creates to any
// authenticated user; updates and deletes require the requester to own the
// object or to hold staff privilege.
func AuthorOrStaffOrReadOnly(method string, user *models.User, authorID int64) bool {
	if isReadMethod(method) {
		return true
	}
	if user.IsAnonymous() {
		return false
	}
	if method == http.MethodPost {
		return true
	}
	return user.ID == authorID || user.IsStaff()
}

// AuthenticatedOnly denies all access to anonymous requests.
func AuthenticatedOnly(user *models.User) bool {
	return !user.IsAnonymous()
}

// StaffOnly gates collection-level access to admins only.
func StaffOnly(user *models.User) bool {
	return user.IsAdmin()
}

// StaffOnlyObject gates object-level access to staff (admin or moderator).
// The asymmetry with StaffOnly is intentional: listing is admin-gated while
// per-object access admits moderators.
func StaffOnlyObject(user *models.User) bool {
	return user.IsStaff()
}
