package dto

import (
	"time"

	"github.com/taskforce/taskforce-api/internal/models"
)

// UserView represents a user in API responses. The password hash is
// never part of any view.
type UserView struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// AuthResponse is the register/login response: a bearer token plus the
// authenticated user's view.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// ToUserView converts a User model to UserView
func ToUserView(user models.User) UserView {
	return UserView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserViews converts a slice of User models to views
func ToUserViews(users []models.User) []UserView {
	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = ToUserView(u)
	}
	return views
}
