package services

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"beacon-chat/internal/repository"
	beacon_errors "beacon-chat/pkg/errors"
)

// AuthService is the identity-oracle adapter: it resolves bearer tokens to
// user ids. Registration and credential checks live outside this service.
type AuthService struct {
	secret   []byte
	expiry   time.Duration
	userRepo repository.UserRepository
}

type AccessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewAuthService(secret string, expiryMin int, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		expiry:   time.Duration(expiryMin) * time.Minute,
		userRepo: userRepo,
	}
}

// IssueToken mints an access token for a known user.
func (s *AuthService) IssueToken(ctx context.Context, userID int64) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}
	now := time.Now()
	claims := AccessClaims{
		UserID: strconv.FormatInt(userID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveToken validates a token and returns the user id it names. Any
// failure surfaces as ErrUnauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (int64, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, beacon_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, beacon_errors.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return 0, beacon_errors.ErrUnauthorized
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, beacon_errors.ErrUnauthorized
	}
	return userID, nil
}
