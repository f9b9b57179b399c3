package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sellthrough-api/internal/api/handler"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/authenticating"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting/mocks"
	"github.com/vfg2006/sellthrough-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		App:  config.App{LogLevel: "info", AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: config.Auth{Secret: testSecret},
		Ingest: config.Ingest{
			DefaultCharset:  "utf-8",
			DryRunMaxRows:   10,
			MaxUploadSizeMB: 1,
		},
	}
}

func bearer(t *testing.T, roleID int, expiresAt time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &domain.Claims{
		UserID:     7,
		UserName:   "Operador",
		UserActive: true,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return "Bearer " + token
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig()
	valid := time.Now().Add(time.Hour)

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		setup    func(importer *mocks.MockImporter)
		expected int
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:     "Healthcheck é público",
			method:   http.MethodGet,
			path:     "/healthcheck",
			expected: http.StatusOK,
		},
		{
			name:     "Rota protegida sem token",
			method:   http.MethodGet,
			path:     "/v1/sellthrough/formats",
			expected: http.StatusUnauthorized,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "AUTH_006")
			},
		},
		{
			name:     "Token expirado",
			method:   http.MethodGet,
			path:     "/v1/sellthrough/formats",
			headers:  map[string]string{"Authorization": bearer(t, middleware.RoleAdmin, time.Now().Add(-time.Hour))},
			expected: http.StatusUnauthorized,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "AUTH_007")
			},
		},
		{
			name:    "Supervisor lista formatos",
			method:  http.MethodGet,
			path:    "/v1/sellthrough/formats",
			headers: map[string]string{"Authorization": bearer(t, middleware.RoleSupervisor, valid)},
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().Formats().Return([]domain.FormatSpec{{ID: "pos_year_week"}})
			},
			expected: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "pos_year_week")
				assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
			},
		},
		{
			name:     "Cliente não acessa importações",
			method:   http.MethodGet,
			path:     "/v1/sellthrough/imports",
			headers:  map[string]string{"Authorization": bearer(t, middleware.RoleClient, valid)},
			expected: http.StatusForbidden,
		},
		{
			name:     "Preflight CORS de origem liberada",
			method:   http.MethodOptions,
			path:     "/v1/sellthrough/import",
			headers:  map[string]string{"Origin": "http://localhost:3000"},
			expected: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:     "Origem não liberada não recebe cabeçalhos CORS",
			method:   http.MethodOptions,
			path:     "/v1/sellthrough/import",
			headers:  map[string]string{"Origin": "http://evil.example"},
			expected: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			importer := mocks.NewMockImporter(ctrl)
			if tt.setup != nil {
				tt.setup(importer)
			}

			h := NewHandler(cfg, nil, importer, authenticating.NewService(cfg), handler.CronJobServices{})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}
