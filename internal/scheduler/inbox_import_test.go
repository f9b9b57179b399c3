package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting/mocks"
	"go.uber.org/mock/gomock"
)

func newInboxService(t *testing.T, importer ingesting.Importer, maxConcurrent int) *InboxImportService {
	t.Helper()

	root := t.TempDir()
	cfg := InboxImportConfig{
		CronSchedule:       "*/15 * * * *",
		InboxDir:           filepath.Join(root, "inbox"),
		ProcessedDir:       filepath.Join(root, "processed"),
		FailedDir:          filepath.Join(root, "failed"),
		Charset:            "utf-8",
		MaxConcurrentFiles: maxConcurrent,
	}
	for _, dir := range []string{cfg.InboxDir, cfg.ProcessedDir, cfg.FailedDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	return &InboxImportService{config: cfg, importer: importer}
}

func writeInboxFile(t *testing.T, s *InboxImportService, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(s.config.InboxDir, name), []byte(content), 0o600))
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestInboxImportService_ImportInbox(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		setup    func(importer *mocks.MockImporter)
		expected InboxResult
		validate func(t *testing.T, s *InboxImportService)
	}{
		{
			name:     "Pasta vazia",
			setup:    func(importer *mocks.MockImporter) {},
			expected: InboxResult{},
		},
		{
			name: "Arquivo concluído vai para processed e abortado para failed",
			files: map[string]string{
				"a_pos.csv":     "Week,Vendor Item Nbr\n202401,A1\n",
				"b_unknown.csv": "Date,Item\n2024-01-01,A1\n",
				".partial.csv":  "Week\n",
			},
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().
					Import(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, src ingesting.RowSource, opts ingesting.RunOptions) (*domain.RunSummary, error) {
						assert.Equal(t, domain.ImportSourceInbox, opts.Source)
						header, err := src.Header()
						if !assert.NoError(t, err) {
							return nil, err
						}

						summary := &domain.RunSummary{RunID: "run-" + opts.FileName, FileName: opts.FileName}
						if header[0] == "Date" {
							summary.State = domain.RunStateAborted
							return summary, ingesting.ErrUnknownFormat
						}
						summary.State = domain.RunStateCompleted
						summary.Upserted = 1
						return summary, nil
					}).
					Times(2)
			},
			expected: InboxResult{Files: 2, Completed: 1, Aborted: 1},
			validate: func(t *testing.T, s *InboxImportService) {
				assert.Equal(t, []string{".partial.csv"}, dirEntries(t, s.config.InboxDir))

				processed := dirEntries(t, s.config.ProcessedDir)
				require.Len(t, processed, 1)
				assert.Contains(t, processed[0], "_a_pos.csv")

				failed := dirEntries(t, s.config.FailedDir)
				require.Len(t, failed, 1)
				assert.Contains(t, failed[0], "_b_unknown.csv")
			},
		},
		{
			name: "Falha do banco mantém o arquivo na pasta de entrada",
			files: map[string]string{
				"pos.csv": "Week,Vendor Item Nbr\n202401,A1\n",
			},
			setup: func(importer *mocks.MockImporter) {
				importer.EXPECT().
					Import(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&domain.RunSummary{RunID: "run-1", State: domain.RunStateAborted}, fmt.Errorf("%w: connection refused", ingesting.ErrStorage))
			},
			expected: InboxResult{Files: 1, Retry: 1},
			validate: func(t *testing.T, s *InboxImportService) {
				assert.Equal(t, []string{"pos.csv"}, dirEntries(t, s.config.InboxDir))
				assert.Empty(t, dirEntries(t, s.config.ProcessedDir))
				assert.Empty(t, dirEntries(t, s.config.FailedDir))
			},
		},
		{
			name: "Tipo não suportado vai para failed sem importar",
			files: map[string]string{
				"relatorio.pdf": "%PDF",
			},
			setup:    func(importer *mocks.MockImporter) {},
			expected: InboxResult{Files: 1, Aborted: 1},
			validate: func(t *testing.T, s *InboxImportService) {
				assert.Len(t, dirEntries(t, s.config.FailedDir), 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			importer := mocks.NewMockImporter(ctrl)
			tt.setup(importer)

			s := newInboxService(t, importer, 2)
			for name, content := range tt.files {
				writeInboxFile(t, s, name, content)
			}

			result, err := s.ImportInbox(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)

			if tt.validate != nil {
				tt.validate(t, s)
			}
		})
	}
}

func TestInboxImportService_RespectsConcurrencyLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)

	var mu sync.Mutex
	running, peak := 0, 0

	importer.EXPECT().
		Import(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ ingesting.RowSource, opts ingesting.RunOptions) (*domain.RunSummary, error) {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			return &domain.RunSummary{RunID: opts.FileName, State: domain.RunStateCompleted}, nil
		}).
		Times(6)

	s := newInboxService(t, importer, 2)
	for _, name := range []string{"1.csv", "2.csv", "3.csv", "4.csv", "5.csv", "6.csv"} {
		writeInboxFile(t, s, name, "Week\n202401\n")
	}

	result, err := s.ImportInbox(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, result.Completed)
	assert.LessOrEqual(t, peak, 2)
	assert.Len(t, dirEntries(t, s.config.ProcessedDir), 6)
}

func TestInboxImportService_MissingInbox(t *testing.T) {
	s := &InboxImportService{config: InboxImportConfig{InboxDir: filepath.Join(t.TempDir(), "nope"), MaxConcurrentFiles: 1}}

	_, err := s.ImportInbox(context.Background())
	assert.Error(t, err)
}

func TestInboxImportService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := mocks.NewMockImporter(ctrl)
	importer.EXPECT().Import(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("falhou"))

	s := newInboxService(t, importer, 1)
	writeInboxFile(t, s, "a.csv", "Week\n")

	s.runImport(context.Background())

	status := s.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, InboxResult{Files: 1, Retry: 1}, status["last_result"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestMoveFile(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	now := time.Date(2024, time.March, 4, 23, 30, 0, 0, time.FixedZone("BRT", -3*60*60))

	write := func(content string) string {
		path := filepath.Join(src, "pos.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	first, err := moveFile(write("primeira"), dest, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "20240305T023000_pos.csv"), first, "prefixo em UTC")

	second, err := moveFile(write("segunda"), dest, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "20240305T023000_pos_1.csv"), second)

	third, err := moveFile(write("terceira"), dest, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "20240305T023000_pos_2.csv"), third)

	for path, content := range map[string]string{first: "primeira", second: "segunda", third: "terceira"} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}

	_, err = moveFile(filepath.Join(src, "ausente.csv"), dest, now)
	assert.Error(t, err)
}
