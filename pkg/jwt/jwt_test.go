package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "user-1", "tenant-1", "OWNER", "test", 5)
	require.NoError(t, err)

	userID, tenantID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "tenant-1", tenantID)
	assert.Equal(t, "OWNER", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, "user-1", "tenant-1", "STAFF", "test", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secreto-distinto-al-original", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, "user-1", "tenant-1", "STAFF", "test", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u", "t", "r", "i", 1)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, _, _, err = Parse("", "x.y.z")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestParse_SinRolEsSesionValida(t *testing.T) {
	tok, err := Generate(secret, "user-1", "tenant-1", "", "test", 5)
	require.NoError(t, err)

	_, tenantID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)
	assert.Empty(t, role, "el rol faltante lo decide RequireRole")
}

func sign(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestParse_ClaimsRechazados(t *testing.T) {
	now := time.Now()
	valid := func() Claims {
		return Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			UserID: "user-1", TenantID: "tenant-1", Role: "ADMIN",
		}
	}
	sinVencimiento := valid()
	sinVencimiento.ExpiresAt = nil
	otroSujeto := valid()
	otroSujeto.Subject = "user-2"
	sinUsuario := valid()
	sinUsuario.UserID, sinUsuario.Subject = "", ""

	tests := []struct {
		name  string
		token string
	}{
		{"firmado con HS512", sign(t, jwt.SigningMethodHS512, valid())},
		{"sin vencimiento", sign(t, jwt.SigningMethodHS256, sinVencimiento)},
		{"sub distinto de user_id", sign(t, jwt.SigningMethodHS256, otroSujeto)},
		{"sin usuario", sign(t, jwt.SigningMethodHS256, sinUsuario)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Parse(secret, tt.token)
			assert.Error(t, err)
		})
	}
}
