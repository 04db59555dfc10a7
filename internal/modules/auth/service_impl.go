package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/tillpointhq/tillpoint-backend/internal/modules/staff"
)

func jwtKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("tillpoint-dev-secret")
}

type service struct {
	staffRepo staff.Repository
}

// NewService creates a new auth service.
func NewService(staffRepo staff.Repository) Service {
	return &service{staffRepo: staffRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	cashier, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if !cashier.IsActive {
		return "", errors.New("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cashier.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	expirationTime := time.Now().Add(12 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   cashier.ID.String(),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
