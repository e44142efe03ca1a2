package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/config"
	"github.com/medimarket/storefront-backend/pkg/enums"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "medimarket-auth"}

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := MintSessionToken(testJWT, time.Now(), time.Hour, userID, enums.ActorRoleSeller)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken(testJWT, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID || claims.Role != enums.ActorRoleSeller {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	token, err := MintSessionToken(testJWT, time.Now().Add(-2*time.Hour), time.Hour, uuid.New(), enums.ActorRoleBuyer)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testJWT, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other := config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"}
	token, err := MintSessionToken(other, time.Now(), time.Hour, uuid.New(), enums.ActorRoleBuyer)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testJWT, token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	other := config.JWTConfig{Secret: "other-secret", Issuer: "medimarket-auth"}
	token, err := MintSessionToken(other, time.Now(), time.Hour, uuid.New(), enums.ActorRoleBuyer)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testJWT, token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	t.Parallel()

	if _, err := MintSessionToken(testJWT, time.Now(), time.Hour, uuid.New(), enums.ActorRole("guest")); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestSessionIsBuyerOf(t *testing.T) {
	t.Parallel()

	buyer := uuid.New()
	s := Session{UserID: buyer, Role: enums.ActorRoleBuyer}
	if !s.IsBuyerOf(buyer) {
		t.Fatal("buyer should match own id")
	}
	if s.IsBuyerOf(uuid.New()) {
		t.Fatal("buyer must not match another id")
	}
	if (Session{UserID: buyer, Role: enums.ActorRoleSeller}).IsBuyerOf(buyer) {
		t.Fatal("seller role must not pass buyer check")
	}
}
