package admin

import "time"

// LoginRequest is the admin panel sign-in payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RejectRequest carries the moderation verdict
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// AdminResponse is the admin account shape returned by the API
type AdminResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// ToResponse strips credentials from an admin account
func ToResponse(a *AdminUser) AdminResponse {
	resp := AdminResponse{
		ID:    a.ID.String(),
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
	if a.LastLoginAt.Valid {
		t := a.LastLoginAt.Time
		resp.LastLogin = &t
	}
	return resp
}
