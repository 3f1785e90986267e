package user

import "quadras/models"

// UserService is the account surface: registration, login, profile
// management and the email-verification / password-reset flows.
type UserService interface {
	Register(req *models.UserRegistration) (*models.Token, error)
	Login(username, password string) (*models.Token, error)
	Get(actor models.Actor, id string) (*models.User, error)
	Update(actor models.Actor, id string, upd *models.UserUpdate) (*models.User, error)
	Delete(actor models.Actor, id string) error
	List(actor models.Actor, role, search string, page, perPage int) ([]models.User, int64, error)
	VerifyEmail(token string) error
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
}
