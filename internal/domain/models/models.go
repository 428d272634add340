package models

import (
	"time"
)

type Role string

const (
	RoleUser        Role = "user"
	RoleModerator   Role = "moderator"
	RoleAdmin       Role = "admin"
	RoleDjangoAdmin Role = "django_admin"
)

type User struct {
	ID            int64     `json:"-"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	Bio           *string   `json:"bio"`
	IsActive      bool      `json:"-"`
	EmailVerified bool      `json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// AnonymousUser represents an unauthenticated request. The Authenticate
// middleware stores it in the request context when no credentials are given.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser || u.ID == 0
}

func (u *User) IsAdmin() bool {
	return !u.IsAnonymous() && u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return !u.IsAnonymous() && u.Role == RoleModerator
}

// IsStaff reports whether the user holds staff privilege, i.e. is an admin
// or a moderator. The django_admin role deliberately grants nothing here.
func (u *User) IsStaff() bool {
	return u.IsAdmin() || u.IsModerator()
}

type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int32     `json:"year"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
	Rating      *float64  `json:"rating"` // mean review score, null with no reviews
}

type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	Author   string    `json:"author"` // author's username
	AuthorID int64     `json:"-"`
	Text     string    `json:"text"`
	Score    int32     `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

type Comment struct {
	ID       int64     `json:"id"`
	ReviewID *int64    `json:"-"` // nil once the parent review is deleted
	Author   string    `json:"author"`
	AuthorID int64     `json:"-"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}
