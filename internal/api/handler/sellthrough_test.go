package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sellthrough-api/internal/api/handler/router"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting/mocks"
	"github.com/vfg2006/sellthrough-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var testIngestConfig = config.Ingest{
	DefaultCharset:  "utf-8",
	DryRunMaxRows:   10,
	MaxUploadSizeMB: 1,
}

func multipartBody(t *testing.T, fileName, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func serve(t *testing.T, importer ingesting.Importer, req *http.Request, roleID int) *httptest.ResponseRecorder {
	t.Helper()

	rt := router.New(router.WithRoutes(Sellthrough(importer, testIngestConfig)...))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, withClaims(req, roleID))
	return rec
}

func TestUploadReport(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		fields   map[string]string
		roleID   int
		setup    func(importer *mocks.MockImporter)
		expected int
		contains string
	}{
		{
			name:     "Importação concluída",
			fileName: "pos.csv",
			content:  "Week,Item\n202401,A1\n",
			roleID:   middleware.RoleAdmin,
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().
					Import(gomock.Any(), gomock.Any(), ingesting.RunOptions{FileName: "pos.csv", Source: domain.ImportSourceUpload}).
					DoAndReturn(func(_ context.Context, src ingesting.RowSource, opts ingesting.RunOptions) (*domain.RunSummary, error) {
						header, err := src.Header()
						if err != nil {
							return nil, err
						}
						return &domain.RunSummary{RunID: "r1", FormatID: header[0], State: domain.RunStateCompleted, Upserted: 1}, nil
					})
			},
			expected: http.StatusOK,
			contains: `"format_id":"Week"`,
		},
		{
			name:     "Dry run usa o limite padrão de linhas",
			fileName: "pos.csv",
			content:  "Week,Item\n",
			fields:   map[string]string{"dry_run": "true"},
			roleID:   middleware.RoleAdmin,
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().
					Import(gomock.Any(), gomock.Any(), ingesting.RunOptions{FileName: "pos.csv", Source: domain.ImportSourceUpload, DryRun: true, MaxRows: 10}).
					Return(&domain.RunSummary{RunID: "r2", State: domain.RunStateCompleted, DryRun: true}, nil)
			},
			expected: http.StatusOK,
			contains: `"dry_run":true`,
		},
		{
			name:     "Formato desconhecido retorna 422 com o resumo",
			fileName: "x.csv",
			content:  "a,b\n",
			roleID:   middleware.RoleAdmin,
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().Import(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&domain.RunSummary{RunID: "r3", State: domain.RunStateAborted}, ingesting.ErrUnknownFormat)
			},
			expected: http.StatusUnprocessableEntity,
			contains: "IMP_001",
		},
		{
			name:     "Falha do banco retorna 500",
			fileName: "x.csv",
			content:  "a,b\n",
			roleID:   middleware.RoleAdmin,
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().Import(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&domain.RunSummary{RunID: "r4", State: domain.RunStateAborted}, ingesting.ErrStorage)
			},
			expected: http.StatusInternalServerError,
			contains: "SRV_002",
		},
		{
			name:     "Tipo de arquivo não suportado",
			fileName: "x.pdf",
			content:  "%PDF",
			roleID:   middleware.RoleAdmin,
			setup:    func(importer *mocks.MockImporter) {},
			expected: http.StatusUnprocessableEntity,
			contains: "IMP_003",
		},
		{
			name:     "Sem arquivo",
			roleID:   middleware.RoleAdmin,
			setup:    func(importer *mocks.MockImporter) {},
			expected: http.StatusBadRequest,
			contains: "VAL_002",
		},
		{
			name:     "dry_run inválido",
			fileName: "pos.csv",
			content:  "Week\n",
			fields:   map[string]string{"dry_run": "talvez"},
			roleID:   middleware.RoleAdmin,
			setup:    func(importer *mocks.MockImporter) {},
			expected: http.StatusBadRequest,
			contains: "VAL_003",
		},
		{
			name:     "Arquivo acima do limite",
			fileName: "big.csv",
			content:  string(bytes.Repeat([]byte("a"), 2<<20)),
			roleID:   middleware.RoleAdmin,
			setup:    func(importer *mocks.MockImporter) {},
			expected: http.StatusRequestEntityTooLarge,
			contains: "IMP_004",
		},
		{
			name:     "Supervisor não pode importar",
			fileName: "pos.csv",
			content:  "Week\n",
			roleID:   middleware.RoleSupervisor,
			setup:    func(importer *mocks.MockImporter) {},
			expected: http.StatusForbidden,
			contains: "AUTH_008",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			importer := mocks.NewMockImporter(ctrl)
			tt.setup(importer)

			body, contentType := multipartBody(t, tt.fileName, tt.content, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/v1/sellthrough/import", body)
			req.Header.Set("Content-Type", contentType)

			rec := serve(t, importer, req, tt.roleID)

			assert.Equal(t, tt.expected, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestListImportRuns(t *testing.T) {
	since := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    string
		setup    func(importer *mocks.MockImporter)
		expected int
	}{
		{
			name:  "Padrões",
			query: "",
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().ListRuns(gomock.Any(), (*time.Time)(nil), defaultRunsLimit).
					Return([]*domain.ImportRun{{ID: "r1"}}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name:  "Com filtros",
			query: "?since=2024-03-01&limit=5",
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().ListRuns(gomock.Any(), &since, 5).Return([]*domain.ImportRun{}, nil)
			},
			expected: http.StatusOK,
		},
		{name: "Data inválida", query: "?since=01/03/2024", setup: func(importer *mocks.MockImporter) {}, expected: http.StatusBadRequest},
		{name: "Limite inválido", query: "?limit=1000", setup: func(importer *mocks.MockImporter) {}, expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			importer := mocks.NewMockImporter(ctrl)
			tt.setup(importer)

			req := httptest.NewRequest(http.MethodGet, "/v1/sellthrough/imports"+tt.query, nil)
			rec := serve(t, importer, req, middleware.RoleSupervisor)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestGetImportRunErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)

	importer.EXPECT().GetRun(gomock.Any(), "r1").Return(&domain.ImportRun{ID: "r1", Skipped: 1}, nil)
	importer.EXPECT().ListRunErrors(gomock.Any(), "r1").Return([]*domain.ImportError{
		{ID: 1, ImportRunID: "r1", RowNumber: 3, ErrorKind: "MalformedNumberError", ErrorData: map[string]string{"POS Qty": "N/A"}},
	}, nil)
	importer.EXPECT().GetRun(gomock.Any(), "missing").Return(nil, nil)

	rec := serve(t, importer, httptest.NewRequest(http.MethodGet, "/v1/sellthrough/imports/r1/errors", nil), middleware.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body ImportRunErrorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r1", body.Run.ID)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "N/A", body.Errors[0].ErrorData["POS Qty"])

	rec = serve(t, importer, httptest.NewRequest(http.MethodGet, "/v1/sellthrough/imports/missing/errors", nil), middleware.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "IMP_005")
}

func TestListFormatsAndChannelItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)

	importer.EXPECT().Formats().Return(config.DefaultCatalog().Formats)
	importer.EXPECT().ListChannelItems(gomock.Any(), 5).Return([]*domain.ChannelItem{{ID: 1, ChannelID: 5, ChannelCode: "0123456789", ItemID: 9}}, nil)

	rec := serve(t, importer, httptest.NewRequest(http.MethodGet, "/v1/sellthrough/formats", nil), middleware.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pos_year_week")

	rec = serve(t, importer, httptest.NewRequest(http.MethodGet, "/v1/channels/5/items", nil), middleware.RoleSupervisor)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0123456789")

	rec = serve(t, importer, httptest.NewRequest(http.MethodGet, "/v1/channels/abc/items", nil), middleware.RoleSupervisor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
