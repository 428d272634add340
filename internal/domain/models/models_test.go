package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		name    string
		user    *User
		isAdmin bool
		isStaff bool
	}{
		{"plain user", &User{ID: 1, Role: RoleUser}, false, false},
		{"moderator", &User{ID: 2, Role: RoleModerator}, false, true},
		{"admin", &User{ID: 3, Role: RoleAdmin}, true, true},
		{"django admin", &User{ID: 4, Role: RoleDjangoAdmin}, false, false},
		{"anonymous", AnonymousUser, false, false},
		{"nil user", nil, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.isAdmin, tc.user.IsAdmin())
			assert.Equal(t, tc.isStaff, tc.user.IsStaff())
		})
	}
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, AnonymousUser.IsAnonymous())
	assert.True(t, (*User)(nil).IsAnonymous())
	assert.False(t, (&User{ID: 1, Role: RoleUser}).IsAnonymous())
}
