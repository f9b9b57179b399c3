package ingesting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	items  *mocks.MockChannelItemRepository
	store  *mocks.MockSellthroughRepository
	runs   *mocks.MockImportRunRepository
	errors *mocks.MockImportErrorRepository
}

func newServiceMocks(ctrl *gomock.Controller) *serviceMocks {
	return &serviceMocks{
		items:  mocks.NewMockChannelItemRepository(ctrl),
		store:  mocks.NewMockSellthroughRepository(ctrl),
		runs:   mocks.NewMockImportRunRepository(ctrl),
		errors: mocks.NewMockImportErrorRepository(ctrl),
	}
}

func (m *serviceMocks) service() Importer {
	return NewService(config.DefaultCatalog(), m.items, m.store, m.runs, m.errors)
}

func TestService_Import(t *testing.T) {
	tests := []struct {
		name     string
		source   func() *sliceSource
		opts     RunOptions
		setup    func(m *serviceMocks)
		wantErr  error
		validate func(t *testing.T, summary *domain.RunSummary)
	}{
		{
			name: "Registra execução concluída sem erros de linha",
			source: func() *sliceSource {
				return newSliceSource(posHeader, []string{"202401", "A1", "Barra", "$10.00", "2", "99%"})
			},
			opts: RunOptions{RunID: "run-ok", FileName: "pos.csv", Source: domain.ImportSourceUpload},
			setup: func(m *serviceMocks) {
				m.items.EXPECT().GetOrCreate(gomock.Any(), gomock.Any()).
					Return(&domain.ChannelItem{ID: 1, ChannelID: 1, ChannelCode: "A1", ItemID: 10}, nil)
				m.store.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *domain.SellthroughRecord) error {
						assert.Equal(t, int64(10), record.ItemID)
						assert.Equal(t, "run-ok", record.ImportRunID)
						return nil
					})
				m.runs.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, run *domain.ImportRun) error {
						assert.Equal(t, "run-ok", run.ID)
						assert.Equal(t, domain.RunStateCompleted, run.State)
						assert.Equal(t, domain.ImportSourceUpload, run.Source)
						assert.Equal(t, 1, run.Upserted)
						return nil
					})
			},
			validate: func(t *testing.T, summary *domain.RunSummary) {
				assert.Equal(t, 1, summary.Upserted)
			},
		},
		{
			name: "Gera id e registra linhas descartadas",
			source: func() *sliceSource {
				return newSliceSource(posHeader, []string{"202401", "A1", "Barra", "$10.00", "N/A", "99%"})
			},
			setup: func(m *serviceMocks) {
				m.runs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.errors.EXPECT().SaveBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, importErrors []*domain.ImportError) error {
						require.Len(t, importErrors, 1)
						assert.NotEmpty(t, importErrors[0].ImportRunID)
						assert.Equal(t, "pos_year_week", importErrors[0].ImportChannel)
						assert.Equal(t, 2, importErrors[0].RowNumber)
						assert.Equal(t, KindMalformedNumber, importErrors[0].ErrorKind)
						assert.Equal(t, "N/A", importErrors[0].ErrorData["POS Qty"])
						return nil
					})
			},
			validate: func(t *testing.T, summary *domain.RunSummary) {
				assert.NotEmpty(t, summary.RunID)
				assert.Len(t, summary.Skipped, 1)
			},
		},
		{
			name: "Execução abortada também é registrada",
			source: func() *sliceSource {
				return newSliceSource([]string{"x", "y"})
			},
			opts: RunOptions{RunID: "run-bad"},
			setup: func(m *serviceMocks) {
				m.runs.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, run *domain.ImportRun) error {
						assert.Equal(t, domain.RunStateAborted, run.State)
						assert.NotEmpty(t, run.ErrorMessage)
						return nil
					})
			},
			wantErr: ErrUnknownFormat,
			validate: func(t *testing.T, summary *domain.RunSummary) {
				assert.Equal(t, domain.RunStateAborted, summary.State)
			},
		},
		{
			name: "Falha ao registrar não altera o resultado",
			source: func() *sliceSource {
				return newSliceSource(posHeader)
			},
			opts: RunOptions{RunID: "run-empty"},
			setup: func(m *serviceMocks) {
				m.runs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("erro ao salvar execução"))
			},
			validate: func(t *testing.T, summary *domain.RunSummary) {
				assert.Equal(t, domain.RunStateCompleted, summary.State)
				assert.Zero(t, summary.TotalRows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newServiceMocks(ctrl)
			tt.setup(m)

			summary, err := m.service().Import(context.Background(), tt.source(), tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, summary)
			tt.validate(t, summary)
		})
	}
}

func TestService_PersistsAfterCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newServiceMocks(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.runs.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.ImportRun) error {
			return ctx.Err()
		})

	_, err := m.service().Import(ctx, newSliceSource(posHeader), RunOptions{RunID: "run-cancel"})
	require.NoError(t, err)
}

func TestService_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newServiceMocks(ctrl)
	svc := m.service()
	ctx := context.Background()

	since := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	runs := []*domain.ImportRun{{ID: "r1"}}
	m.runs.EXPECT().List(ctx, &since, 20).Return(runs, nil)
	m.runs.EXPECT().GetByID(ctx, "r1").Return(runs[0], nil)
	m.errors.EXPECT().ListByRunID(ctx, "r1").Return([]*domain.ImportError{{ID: 1}}, nil)
	m.items.EXPECT().ListByChannel(ctx, 5).Return([]*domain.ChannelItem{{ID: 3}}, nil)

	gotRuns, err := svc.ListRuns(ctx, &since, 20)
	require.NoError(t, err)
	assert.Equal(t, runs, gotRuns)

	run, err := svc.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", run.ID)

	importErrors, err := svc.ListRunErrors(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, importErrors, 1)

	items, err := svc.ListChannelItems(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	formats := svc.Formats()
	require.NotEmpty(t, formats)
	formats[0].ID = "alterado"
	assert.NotEqual(t, "alterado", svc.Formats()[0].ID)
}
