package ingesting

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/pkg/metrics"
	"github.com/vfg2006/sellthrough-api/pkg/utils"
)

const persistTimeout = 30 * time.Second

type Importer interface {
	// Import executa o pipeline e registra a execução, os erros de linha e as métricas
	Import(ctx context.Context, src RowSource, opts RunOptions) (*domain.RunSummary, error)
	ListRuns(ctx context.Context, since *time.Time, limit int) ([]*domain.ImportRun, error)
	GetRun(ctx context.Context, id string) (*domain.ImportRun, error)
	ListRunErrors(ctx context.Context, runID string) ([]*domain.ImportError, error)
	ListChannelItems(ctx context.Context, channelID int) ([]*domain.ChannelItem, error)
	Formats() []domain.FormatSpec
}

type Service struct {
	pipeline        *Pipeline
	catalog         *domain.Catalog
	channelItemRepo repository.ChannelItemRepository
	runRepo         repository.ImportRunRepository
	errorRepo       repository.ImportErrorRepository
}

func NewService(
	catalog *domain.Catalog,
	channelItemRepo repository.ChannelItemRepository,
	sellthroughRepo repository.SellthroughRepository,
	runRepo repository.ImportRunRepository,
	errorRepo repository.ImportErrorRepository,
) Importer {
	return &Service{
		pipeline:        NewPipeline(catalog, NewChannelItemResolver(channelItemRepo), sellthroughRepo),
		catalog:         catalog,
		channelItemRepo: channelItemRepo,
		runRepo:         runRepo,
		errorRepo:       errorRepo,
	}
}

func (s *Service) Import(ctx context.Context, src RowSource, opts RunOptions) (*domain.RunSummary, error) {
	if opts.RunID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
		}
		opts.RunID = id
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    opts.RunID,
		"file_name": opts.FileName,
		"source":    opts.Source,
		"dry_run":   opts.DryRun,
	}).Info("Iniciando importação de sell-through")

	summary, runErr := s.pipeline.Run(ctx, src, opts)

	metrics.ObserveRun(summary)

	// o registro da execução sobrevive ao cancelamento do contexto da importação
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.persist(persistCtx, summary); err != nil {
		logrus.WithError(err).WithField("run_id", summary.RunID).Error("Erro ao registrar execução de importação")
	}

	return summary, runErr
}

func (s *Service) persist(ctx context.Context, summary *domain.RunSummary) error {
	if err := s.runRepo.Save(ctx, summary.ToImportRun()); err != nil {
		return err
	}

	if len(summary.Skipped) == 0 {
		return nil
	}

	importErrors := make([]*domain.ImportError, 0, len(summary.Skipped))
	for _, skipped := range summary.Skipped {
		importErrors = append(importErrors, &domain.ImportError{
			ImportRunID:   summary.RunID,
			ImportChannel: summary.FormatID,
			RowNumber:     skipped.Row,
			ErrorKind:     skipped.Kind,
			ErrorMessage:  skipped.Detail,
			ErrorData:     skipped.Data,
		})
	}

	return s.errorRepo.SaveBatch(ctx, importErrors)
}

func (s *Service) ListRuns(ctx context.Context, since *time.Time, limit int) ([]*domain.ImportRun, error) {
	return s.runRepo.List(ctx, since, limit)
}

func (s *Service) GetRun(ctx context.Context, id string) (*domain.ImportRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

func (s *Service) ListRunErrors(ctx context.Context, runID string) ([]*domain.ImportError, error) {
	return s.errorRepo.ListByRunID(ctx, runID)
}

func (s *Service) ListChannelItems(ctx context.Context, channelID int) ([]*domain.ChannelItem, error) {
	return s.channelItemRepo.ListByChannel(ctx, channelID)
}

// Formats retorna uma cópia dos formatos carregados
func (s *Service) Formats() []domain.FormatSpec {
	formats := make([]domain.FormatSpec, len(s.catalog.Formats))
	copy(formats, s.catalog.Formats)
	return formats
}
