package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired el token tiene firma válida pero ya venció.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid firma, estructura o algoritmo incorrectos.
	ErrTokenInvalid = errors.New("invalid token")
)

// Payload identidad que viaja en ambos tokens.
type Payload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenType distingue access de refresh dentro del propio token.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims incluye los claims estándar JWT más el payload de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	Payload
	TokenType TokenType `json:"token_type"`
}

// TokenPair par access/refresh devuelto en login, registro y refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer emite pares de tokens. Access y refresh usan secretos distintos, así
// poseer uno no permite falsificar el otro.
type Issuer struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Name          string // claim iss
}

// IssuePair firma un access token de vida corta y un refresh token de vida larga.
func (i Issuer) IssuePair(p Payload) (TokenPair, error) {
	access, err := Generate(i.AccessSecret, p, i.Name, i.AccessTTL, AccessToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("access token: %w", err)
	}
	refresh, err := Generate(i.RefreshSecret, p, i.Name, i.RefreshTTL, RefreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess valida un access token.
func (i Issuer) VerifyAccess(token string) (Payload, error) {
	return Verify(i.AccessSecret, token, AccessToken)
}

// VerifyRefresh valida un refresh token.
func (i Issuer) VerifyRefresh(token string) (Payload, error) {
	return Verify(i.RefreshSecret, token, RefreshToken)
}

// Generate genera un token JWT HS256 del tipo indicado con el payload y la vida indicada.
func Generate(secret string, p Payload, issuer string, ttl time.Duration, typ TokenType) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Payload:   p,
		TokenType: typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify valida el token, exige que su token_type sea typ y devuelve su payload.
// Retorna ErrTokenExpired si venció y ErrTokenInvalid en cualquier otro fallo.
func Verify(secret, tokenString string, typ TokenType) (Payload, error) {
	if secret == "" {
		return Payload{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Payload{}, ErrTokenExpired
		}
		return Payload{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Payload.ID == "" || claims.TokenType != typ {
		return Payload{}, ErrTokenInvalid
	}
	return claims.Payload, nil
}
