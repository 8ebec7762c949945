package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ============================================
// Auth Service
// ============================================

// AuthService issues and checks bearer tokens. There is no login flow: tokens are minted by the CLI.
type AuthService interface {
	IssueToken(userID int64, ttl time.Duration) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
	GetUserIDFromToken(token *jwt.Token) (int64, error)
}

type authService struct {
	secret []byte
}

func NewAuthService(secret string) AuthService {
	return &authService{secret: []byte(secret)}
}

func (s *authService) IssueToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *authService) GetUserIDFromToken(token *jwt.Token) (int64, error) {
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
