package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/nurpe/busfleet/internal/model"
)

const minPasswordLength = 6

type AccountStore interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	CreateUser(ctx context.Context, user *model.User) error
	FindAdmin(ctx context.Context, login string) (*model.Admin, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetAdmin(ctx context.Context, id uint) (*model.Admin, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(principal model.Principal) (string, time.Time, error)
}

type AuthService struct {
	accounts AccountStore
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAuthService(accounts AccountStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{accounts: accounts, hasher: hasher, tokens: tokens}
}

type AdminSignupInput struct {
	Username string
	Email    string
	Password string
}

type UserSignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Login    string
	Password string
}

type AuthResult struct {
	Token     string     `json:"token"`
	Role      model.Role `json:"role"`
	ID        uint       `json:"id"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type Profile struct {
	ID       uint       `json:"id"`
	Role     model.Role `json:"role"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Username string     `json:"username,omitempty"`
}

func (s *AuthService) SignupAdmin(ctx context.Context, input AdminSignupInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{Username: username, Email: email, PasswordHash: hash}
	if err := s.accounts.CreateAdmin(ctx, admin); err != nil {
		return nil, storeError(err)
	}
	return s.issue(model.Principal{ID: admin.ID, Role: model.RoleAdmin})
}

func (s *AuthService) SignupUser(ctx context.Context, input UserSignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.accounts.CreateUser(ctx, user); err != nil {
		return nil, storeError(err)
	}
	return s.issue(model.Principal{ID: user.ID, Role: model.RoleUser})
}

// LoginAdmin accepts either the username or the email as login.
func (s *AuthService) LoginAdmin(ctx context.Context, input LoginInput) (*AuthResult, error) {
	admin, err := s.accounts.FindAdmin(ctx, input.Login)
	if err != nil {
		return nil, credentialError(err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, input.Password); err != nil {
		return nil, ErrUnauthorized
	}
	return s.issue(model.Principal{ID: admin.ID, Role: model.RoleAdmin})
}

func (s *AuthService) LoginUser(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.accounts.FindUserByEmail(ctx, input.Login)
	if err != nil {
		return nil, credentialError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, ErrUnauthorized
	}
	return s.issue(model.Principal{ID: user.ID, Role: model.RoleUser})
}

// Me resolves the account behind a token. Tokens of deleted accounts are
// rejected.
func (s *AuthService) Me(ctx context.Context, principal model.Principal) (*Profile, error) {
	switch principal.Role {
	case model.RoleAdmin:
		admin, err := s.accounts.GetAdmin(ctx, principal.ID)
		if err != nil {
			return nil, credentialError(err)
		}
		return &Profile{ID: admin.ID, Role: model.RoleAdmin, Name: admin.Username, Email: admin.Email, Username: admin.Username}, nil
	case model.RoleUser:
		user, err := s.accounts.GetUser(ctx, principal.ID)
		if err != nil {
			return nil, credentialError(err)
		}
		return &Profile{ID: user.ID, Role: model.RoleUser, Name: user.Name, Email: user.Email}, nil
	default:
		return nil, ErrUnauthorized
	}
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *AuthService) issue(principal model.Principal) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, Role: principal.Role, ID: principal.ID, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	return email, nil
}

func credentialError(err error) error {
	if errors.Is(storeError(err), ErrNotFound) {
		return ErrUnauthorized
	}
	return storeError(err)
}
