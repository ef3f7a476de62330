package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/safetravel/safetravel/internal/notification"
	"github.com/safetravel/safetravel/internal/user"
)

var (
	// ErrMissingFields indicates a required registration or login field was empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates the credential store, password hashing and the token
// service for registration and login.
type Service struct {
	users    user.Repository
	tokens   *Tokens
	notifier notification.Notifier
}

// NewService creates the auth flow service.
func NewService(users user.Repository, tokens *Tokens, notifier notification.Notifier) *Service {
	return &Service{users: users, tokens: tokens, notifier: notifier}
}

// RegisterInput carries the registration fields. All are required.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account with a hashed password. The existence
// pre-check gives a friendly error on the common path; the store's unique
// constraint remains the authoritative signal when two registrations race.
func (s *Service) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return user.User{}, ErrMissingFields
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return user.User{}, err
	}
	if exists {
		return user.User{}, user.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	account := user.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, account); err != nil {
		return user.User{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindUserRegistered,
			Destination: account.Email,
			Body:        "welcome to SafeTravel",
		})
	}

	return account, nil
}

// Login verifies credentials and issues a session token bound to the account
// email. Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	if email == "" || password == "" {
		return user.User{}, "", ErrMissingFields
	}

	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return user.User{}, "", err
	}

	return account, token, nil
}
