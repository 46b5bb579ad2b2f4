package security

import (
	"testing"
	"time"
)

func TestOperatorTokenRoundTrip(t *testing.T) {
	token, err := GenerateOperatorToken("op-1", "ops@example.com", "admin", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	op, err := OperatorFromClaims(claims)
	if err != nil {
		t.Fatalf("failed to decode claims: %v", err)
	}
	if op.OperatorID != "op-1" || op.Email != "ops@example.com" || op.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", op)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateOperatorToken("op-1", "ops@example.com", "admin", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateOperatorToken("op-1", "ops@example.com", "admin", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestOperatorFromClaimsMissingID(t *testing.T) {
	token, err := GenerateOperatorToken("op-1", "ops@example.com", "admin", "secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	delete(claims, "operatorId")
	if _, err := OperatorFromClaims(claims); err == nil {
		t.Fatal("expected error for missing operatorId claim")
	}
}

func TestGenerators(t *testing.T) {
	first := GenerateULID()
	second := GenerateULID()
	if len(first) != 26 || len(second) != 26 {
		t.Fatalf("expected 26-char ULIDs, got %q / %q", first, second)
	}
	if first == second {
		t.Fatal("expected distinct ULIDs")
	}
}
