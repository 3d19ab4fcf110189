// Package jwt emite y verifica los tokens de sesión de la API.
//
// Una sesión queda atada a una sola membresía: el usuario, el tenant con el que inició sesión
// y el rol que tiene en ese tenant (OWNER, ADMIN o STAFF). Cambiar de tenant exige un token nuevo.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret   = errors.New("jwt: secret vacío")
	ErrInvalidClaims = errors.New("jwt: claims de sesión inválidos")
)

// Claims de la sesión. Subject repite el id de usuario para clientes que solo leen "sub".
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	// Role de la membresía usada al iniciar sesión. Vacío en tokens emitidos sin membresía;
	// RequireRole los rechaza con MISSING_ROLE.
	Role string `json:"role"`
}

var parserOptions = []jwt.ParserOption{
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithExpirationRequired(),
	jwt.WithIssuedAt(),
}

// Generate firma con HS256 una sesión de userID en tenantID con el rol de su membresía.
// expMinutes <= 0 produce un token ya vencido.
func Generate(secret, userID, tenantID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	issuedAt := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifica firma y vencimiento y devuelve la sesión. Un token cuyo user_id no coincide
// con sub se rechaza.
func Parse(secret, tokenString string) (userID, tenantID, role string, err error) {
	if secret == "" {
		return "", "", "", ErrEmptySecret
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, parserOptions...)
	if err != nil {
		return "", "", "", err
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return "", "", "", ErrInvalidClaims
	}
	return claims.UserID, claims.TenantID, claims.Role, nil
}
