package user

import (
	"context"
	"fmt"
	"time"

	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/services/notification"
	"quadras/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUserService is the standard UserService implementation.
type DefaultUserService struct {
	Users userRepo.UserRepository
	Email *notification.EmailSender
}

// Register creates an account, emails a verification token and logs the new
// user straight in.
func (s *DefaultUserService) Register(req *models.UserRegistration) (*models.Token, error) {
	if existing, err := s.Users.GetByEmail(req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.Users.GetByUsername(req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CPF:          req.CPF,
		BirthDate:    req.BirthDate,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		IsActive:     true,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}

	s.sendVerificationEmail(u)
	return s.issueToken(u)
}

// Login authenticates by username or email and returns a bearer token.
func (s *DefaultUserService) Login(username, password string) (*models.Token, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if u, err = s.Users.GetByEmail(username); err != nil {
			return nil, err
		}
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(u)
}

// issueToken signs a JWT and caches its hash so the auth middleware can
// validate without hitting Mongo.
func (s *DefaultUserService) issueToken(u *models.User) (*models.Token, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, utils.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Set(ctx,
		utils.AuthCachePrefix+u.ID, utils.HashToken(token), utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth token",
			zap.String("user_id", u.ID), zap.Error(err))
	}

	return &models.Token{AccessToken: token, TokenType: "bearer", User: *u}, nil
}

// Get returns a user's profile to themselves or an admin.
func (s *DefaultUserService) Get(actor models.Actor, id string) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrNotPermitted
	}
	u, err := s.Users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update applies profile changes. Changing the email resets verification;
// activation toggles are admin-only.
func (s *DefaultUserService) Update(actor models.Actor, id string, upd *models.UserUpdate) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrNotPermitted
	}
	u, err := s.Users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	updateDoc := bson.M{}
	if upd.Username != nil && *upd.Username != u.Username {
		if existing, err := s.Users.GetByUsername(*upd.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, ErrUsernameTaken
		}
		updateDoc["username"] = *upd.Username
	}
	if upd.Email != nil && *upd.Email != u.Email {
		if existing, err := s.Users.GetByEmail(*upd.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, ErrEmailTaken
		}
		updateDoc["email"] = *upd.Email
		updateDoc["email_verified"] = false
	}
	if upd.FirstName != nil {
		updateDoc["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		updateDoc["last_name"] = *upd.LastName
	}
	if upd.Phone != nil {
		updateDoc["phone"] = *upd.Phone
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updateDoc["password_hash"] = string(hash)
	}
	if upd.IsActive != nil {
		if !actor.IsAdmin() {
			return nil, ErrNotPermitted
		}
		updateDoc["is_active"] = *upd.IsActive
	}

	if len(updateDoc) > 0 {
		if err := s.Users.UpdateSetDocument(id, updateDoc); err != nil {
			return nil, err
		}
	}

	updated, err := s.Users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if _, changed := updateDoc["email"]; changed {
		s.sendVerificationEmail(updated)
	}
	return updated, nil
}

// Delete removes an account, for the account holder or an admin.
func (s *DefaultUserService) Delete(actor models.Actor, id string) error {
	if !actor.IsAdmin() && actor.ID != id {
		return ErrNotPermitted
	}
	if err := s.Users.Delete(id); err != nil {
		return err
	}
	s.dropAuthCache(id)
	return nil
}

// List pages over accounts, admin only.
func (s *DefaultUserService) List(actor models.Actor, role, search string, page, perPage int) ([]models.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrNotPermitted
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = utils.DefaultPageSize
	}
	if perPage > utils.MaxPageSize {
		perPage = utils.MaxPageSize
	}
	return s.Users.List(role, search, page, perPage)
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *DefaultUserService) VerifyEmail(token string) error {
	userID, err := utils.ConsumeToken(utils.VerifyEmailPurpose, token)
	if err != nil {
		return ErrInvalidToken
	}
	return s.Users.UpdateSetDocument(userID, bson.M{"email_verified": true})
}

// RequestPasswordReset emails a reset token. Unknown addresses are silently
// accepted so the endpoint cannot be used to probe for accounts.
func (s *DefaultUserService) RequestPasswordReset(email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}

	token, err := utils.IssueToken(utils.PasswordResetPurpose, u.ID)
	if err != nil {
		return err
	}
	s.sendEmail(u.Email, "Password reset",
		fmt.Sprintf("Hi %s, use this code to reset your password: %s", u.FullName(), token))
	return nil
}

// ResetPassword consumes a reset token, replaces the password and drops any
// cached session.
func (s *DefaultUserService) ResetPassword(token, newPassword string) error {
	userID, err := utils.ConsumeToken(utils.PasswordResetPurpose, token)
	if err != nil {
		return ErrInvalidToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Users.UpdateSetDocument(userID, bson.M{"password_hash": string(hash)}); err != nil {
		return err
	}
	s.dropAuthCache(userID)
	return nil
}

func (s *DefaultUserService) sendVerificationEmail(u *models.User) {
	token, err := utils.IssueToken(utils.VerifyEmailPurpose, u.ID)
	if err != nil {
		utils.GetLogger().Warn("failed to issue verification token",
			zap.String("user_id", u.ID), zap.Error(err))
		return
	}
	s.sendEmail(u.Email, "Verify your email",
		fmt.Sprintf("Hi %s, use this code to verify your email: %s", u.FullName(), token))
}

func (s *DefaultUserService) sendEmail(to, subject, body string) {
	if s.Email == nil {
		return
	}
	if err := s.Email.Send(context.Background(), to, subject, body); err != nil {
		utils.GetLogger().Warn("account email delivery failed",
			zap.String("to", to), zap.Error(err))
	}
}

func (s *DefaultUserService) dropAuthCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop auth cache",
			zap.String("user_id", userID), zap.Error(err))
	}
}
