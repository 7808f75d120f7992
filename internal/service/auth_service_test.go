package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mohamedkhaled004/school-academy-backend/internal/config"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
)

func testAuthService(secret string) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // minimum cost keeps the test fast
	}, nil)
}

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := testAuthService("secret")

	hash, err := svc.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}

	if err := svc.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword() with correct password = %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc := testAuthService("test-secret")
	now := time.Now()

	signed := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(42),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: 42,
		Role:   model.RoleAdmin,
	})

	claims, err := svc.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.ID == "" {
		t.Error("JTI missing from claims")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testAuthService("correct-secret")

	signed := signTestToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
		Role:   model.RoleStudent,
	})

	if _, err := svc.ValidateToken(signed); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testAuthService("test-secret")

	signed := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: 1,
		Role:   model.RoleStudent,
	})

	if _, err := svc.ValidateToken(signed); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	svc := testAuthService("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
		Role:   model.RoleAdmin,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.ValidateToken(signed); err == nil {
		t.Error("ValidateToken() accepted alg=none")
	}
}
