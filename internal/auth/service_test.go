package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/safetravel/safetravel/internal/user"
)

func newTestService() *Service {
	return NewService(user.NewMemoryRepository(), NewTokens([]byte("test-secret"), time.Hour), nil)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Email != "ann@x.com" {
		t.Fatalf("expected email ann@x.com got %s", account.Email)
	}
	if string(account.PasswordHash) == "pw123" {
		t.Fatal("password stored in plaintext")
	}

	logged, token, err := svc.Login(ctx, "ann@x.com", "pw123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.Name != "Ann" {
		t.Fatalf("expected name Ann got %s", logged.Name)
	}

	if !svc.tokens.Validate(token, "ann@x.com") {
		t.Fatal("expected issued token to validate for the registered email")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inputs := []RegisterInput{
		{Email: "ann@x.com", Password: "pw123"},
		{Name: "Ann", Password: "pw123"},
		{Name: "Ann", Email: "ann@x.com"},
	}
	for _, input := range inputs {
		if _, err := svc.Register(ctx, input); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v got %v", input, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Name: "Imposter", Email: "ann@x.com", Password: "other"})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, "", "pw123"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ann@x.com", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields got %v", err)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "ann@x.com", "nope")
	_, _, unknownEmail := svc.Login(ctx, "ghost@x.com", "pw123")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("error messages must match: %q vs %q", wrongPassword, unknownEmail)
	}
}
