package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/dto"
	"quizforge/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations. Tokens
// are normally minted by the institution's identity provider using the
// shared secret; CreateJWT exists for tooling and tests.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error)
}

type authServiceImpl struct {
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{appConfig: appConfig}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error) {
	claims := dto.AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.Role != dto.RoleStaff && claims.Role != dto.RoleStudent {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidJWTToken, claims.Role)
	}
	return claims, nil
}
