package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	DefaultExpiration = time.Hour * 24

	tokenCookieKey = "token"
	userIdClaim    = "user-id"
	expClaim       = "exp"
	idClaim        = "jti"
)

var ErrNoSession = errors.New("no session")

// Manager establishes, ends and resolves authenticated sessions.
type Manager interface {
	Login(w http.ResponseWriter, userId int) error
	Logout(w http.ResponseWriter)
	UserId(r *http.Request) (int, error)
}

// JwtManager keeps sessions in an HS256 signed cookie.
type JwtManager struct {
	signingKey []byte
	expiration time.Duration
}

func NewJwtManager(signingKey []byte, expiration time.Duration) *JwtManager {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	return &JwtManager{
		signingKey: signingKey,
		expiration: expiration,
	}
}

func (m *JwtManager) CreateToken(userId int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIdClaim: userId,
		expClaim:    time.Now().Add(m.expiration).Unix(),
		idClaim:     uuid.NewString(),
	})

	return token.SignedString(m.signingKey)
}

func (m *JwtManager) Login(w http.ResponseWriter, userId int) error {
	token, err := m.CreateToken(userId)
	if err != nil {
		return fmt.Errorf("create jwt: %w", err)
	}

	http.SetCookie(w, createJwtCookie(token, m.expiration))
	return nil
}

func (m *JwtManager) Logout(w http.ResponseWriter) {
	// instruct browser to delete cookie by overwriting it with an expired token
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieKey,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (m *JwtManager) UserId(r *http.Request) (int, error) {
	tokenCookie, err := r.Cookie(tokenCookieKey)
	if err != nil {
		return 0, ErrNoSession
	}

	token, err := m.verifyToken(tokenCookie.Value)
	if err != nil {
		return 0, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	userId, ok := claims[userIdClaim].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user id claim")
	}

	return int(userId), nil
}

func (m *JwtManager) verifyToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return token, nil
}

func createJwtCookie(tokenString string, exp time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieKey,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(exp),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
