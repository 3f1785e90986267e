package models

import "time"

// UserRole controls access to arena management and the admin panel.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleArenaOwner UserRole = "arena_owner"
	RoleCustomer   UserRole = "customer"
)

// User represents an account record.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Email         string    `bson:"email" json:"email"`
	FirstName     string    `bson:"first_name" json:"first_name"`
	LastName      string    `bson:"last_name" json:"last_name"`
	Phone         string    `bson:"phone" json:"phone"`
	CPF           string    `bson:"cpf" json:"cpf"`
	BirthDate     string    `bson:"birth_date" json:"birth_date"` // YYYY-MM-DD
	PasswordHash  string    `bson:"password_hash" json:"-"`
	Role          UserRole  `bson:"role" json:"role"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRegistration is the signup payload.
type UserRegistration struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	CPF       string `json:"cpf" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
}

// UserUpdate carries optional profile changes; nil fields are left untouched.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Password  *string `json:"password,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Token is the login response: bearer token plus the authenticated user.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Actor identifies who is performing a request, for permission checks.
type Actor struct {
	ID   string
	Role UserRole
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// FullName joins first and last name for notifications.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
