package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staymart/internal/models"
	"staymart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is a freshly issued session plus the public user record.
type AuthResult struct {
	Token   string       `json:"token"`
	Expires time.Time    `json:"expires"`
	User    *models.User `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type GoogleLoginRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// Credential optionally carries a Google ID token. When a verifier is
	// configured the token's identity overrides the posted name/email.
	Credential string `json:"credential"`
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Picture  string `json:"picture"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*AuthResult, error)
	UpdateDetails(ctx context.Context, callerID uuid.UUID, req *UpdateUserRequest) (*AuthResult, error)
	AllOwners(ctx context.Context) ([]*models.User, error)
	SetOwnerVerification(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error)
}

type userService struct {
	users    repositories.UserRepository
	tokens   *TokenService
	verifier *GoogleVerifier // nil unless a JWKS URL is configured
}

func NewUserService(users repositories.UserRepository, tokens *TokenService, verifier *GoogleVerifier) UserService {
	return &userService{users: users, tokens: tokens, verifier: verifier}
}

func (s *userService) issueSession(user *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Expires: exp, User: user}, nil
}

// validateOwnerFields enforces that owner registrations carry contact
// details. The requirement applies at creation time only.
func validateOwnerFields(role, phone, address string) error {
	if role == models.RoleOwner && (strings.TrimSpace(phone) == "" || strings.TrimSpace(address) == "") {
		return fmt.Errorf("%w: phone number and address are required for property owners", ErrValidation)
	}
	return nil
}

func optional(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: invalid role provided", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validateOwnerFields(role, req.Phone, req.Address); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Picture:      models.DefaultPicture,
	}
	if role == models.RoleOwner {
		user.Phone = optional(req.Phone)
		user.Address = optional(req.Address)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(user)
}

// GoogleLogin is an idempotent upsert-by-email: an unknown email creates an
// account with an unguessable password, a known one logs in without a
// password check.
func (s *userService) GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*AuthResult, error) {
	if s.verifier != nil && req.Credential != "" {
		claims, err := s.verifier.Verify(req.Credential)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		req.Email = claims.Email
		if claims.Name != "" {
			req.Name = claims.Name
		}
	}

	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: invalid role provided", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validateOwnerFields(role, req.Phone, req.Address); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		// The password is never surfaced to the caller; it only exists so
		// the record satisfies the credential schema.
		hash, err := bcrypt.GenerateFromPassword([]byte(random.String(16)), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user = &models.User{
			ID:           uuid.New(),
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Picture:      models.DefaultPicture,
		}
		if role == models.RoleOwner {
			user.Phone = optional(req.Phone)
			user.Address = optional(req.Address)
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.issueSession(user)
}

// UpdateDetails lets a caller update their own profile; admins may update
// anyone. Phone and address only apply to owner accounts, and the password
// is rehashed only when a new one is supplied.
func (s *userService) UpdateDetails(ctx context.Context, callerID uuid.UUID, req *UpdateUserRequest) (*AuthResult, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}

	if user.ID != callerID {
		caller, err := s.users.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if caller.Role != models.RoleAdmin {
			return nil, ErrForbidden
		}
	}

	user.Name = req.Name
	if user.IsOwner() {
		if req.Phone != "" {
			user.Phone = optional(req.Phone)
		}
		if req.Address != "" {
			user.Address = optional(req.Address)
		}
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Picture != "" {
		user.Picture = req.Picture
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

func (s *userService) AllOwners(ctx context.Context) ([]*models.User, error) {
	return s.users.ListByRole(ctx, models.RoleOwner)
}

func (s *userService) SetOwnerVerification(ctx context.Context, id uuid.UUID, verified bool) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsOwner() {
		return nil, fmt.Errorf("%w: user is not a property owner", ErrValidation)
	}
	if err := s.users.SetVerified(ctx, id, verified); err != nil {
		return nil, err
	}
	user.IsVerified = verified
	return user, nil
}
