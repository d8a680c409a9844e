package auth

import (
	"time"

	"gallery/errvalues"

	"github.com/golang-jwt/jwt/v5"
)

const TokenLifetime = 2 * time.Hour

// TokenService issues and checks the signed session tokens handed out at
// login. Tokens are stateless - expiry is the only bound on their lifetime.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (t *TokenService) Issue(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(TokenLifetime).Unix(),
	})
	return token.SignedString(t.secret)
}

// Verify returns the username asserted by a valid, unexpired token
func (t *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", errvalues.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errvalues.ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errvalues.ErrInvalidToken
	}
	return username, nil
}
