package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims *domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(expiresAt time.Time) *domain.Claims {
	return &domain.Claims{
		UserID:     7,
		UserName:   "Ana",
		UserEmail:  "ana@example.com",
		UserActive: true,
		UserRoleID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	inactive := validClaims(time.Now().Add(time.Hour))
	inactive.UserActive = false

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "Token válido",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(time.Now().Add(time.Hour)))
			},
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(time.Now().Add(-time.Hour)))
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "Assinado com outro segredo",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("outro"), validClaims(time.Now().Add(time.Hour)))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "Algoritmo none é rejeitado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims(time.Now().Add(time.Hour)))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "Usuário desativado",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), inactive)
			},
			wantErr: ErrUserDisabled,
		},
		{
			name:    "Texto qualquer",
			token:   func(t *testing.T) string { return "abc.def.ghi" },
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Vazio",
			token:   func(t *testing.T) string { return "" },
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
			assert.Equal(t, 1, claims.UserRoleID)
		})
	}
}
