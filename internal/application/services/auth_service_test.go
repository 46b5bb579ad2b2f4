package services

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/operator"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/security"
	"golang.org/x/crypto/bcrypt"
)

type fakeOperatorRepo struct {
	operators map[string]*operator.Operator
	err       error
}

func (f *fakeOperatorRepo) FindByEmail(email string) (*operator.Operator, error) {
	if f.err != nil {
		return nil, f.err
	}
	op, ok := f.operators[email]
	if !ok {
		return nil, nil
	}
	return op, nil
}

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
	})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &fakeOperatorRepo{operators: map[string]*operator.Operator{
		"ops@example.com": {ID: "op-1", Email: "ops@example.com", PasswordHash: string(hash), Role: "admin"},
	}}
	svc := NewAuthService(quietLogger(t))
	const secret = "test-secret"

	result := svc.authenticate(repo, secret, "t1", "ops@example.com", "hunter2")
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Role != "admin" {
		t.Fatalf("expected role admin, got %q", result.Role)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := security.ValidateJWT(result.Token, secret)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	opClaims, err := security.OperatorFromClaims(claims)
	if err != nil {
		t.Fatalf("failed to decode claims: %v", err)
	}
	if opClaims.OperatorID != "op-1" || opClaims.Email != "ops@example.com" || opClaims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", opClaims)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &fakeOperatorRepo{operators: map[string]*operator.Operator{
		"ops@example.com": {ID: "op-1", Email: "ops@example.com", PasswordHash: string(hash), Role: "admin"},
	}}
	svc := NewAuthService(quietLogger(t))

	if result := svc.authenticate(repo, "s", "t1", "ops@example.com", "wrong"); result.Success {
		t.Fatal("expected rejection for wrong password")
	}
	if result := svc.authenticate(repo, "s", "t1", "nobody@example.com", "hunter2"); result.Success {
		t.Fatal("expected rejection for unknown operator")
	}

	broken := &fakeOperatorRepo{err: errors.New("db gone")}
	result := svc.authenticate(broken, "s", "t1", "ops@example.com", "hunter2")
	if result.Success {
		t.Fatal("expected failure when the lookup errors")
	}
	if result.Error != "Authentication unavailable" {
		t.Fatalf("expected lookup failures to be reported as unavailable, got %q", result.Error)
	}
}

func TestAuthenticateDoesNotLeakWhichCheckFailed(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	repo := &fakeOperatorRepo{operators: map[string]*operator.Operator{
		"ops@example.com": {ID: "op-1", Email: "ops@example.com", PasswordHash: string(hash), Role: "admin"},
	}}
	svc := NewAuthService(quietLogger(t))

	wrongPassword := svc.authenticate(repo, "s", "t1", "ops@example.com", "wrong")
	unknownEmail := svc.authenticate(repo, "s", "t1", "nobody@example.com", "hunter2")
	if wrongPassword.Error != unknownEmail.Error {
		t.Fatalf("rejection messages differ: %q vs %q", wrongPassword.Error, unknownEmail.Error)
	}
}
