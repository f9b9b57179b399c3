package ingesting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

// RowSource entrega o cabeçalho uma vez e depois as linhas em ordem; Next retorna io.EOF no fim
type RowSource interface {
	Header() ([]string, error)
	Next() (*domain.ReportRow, error)
}

// RunOptions controla uma execução do pipeline
type RunOptions struct {
	RunID    string
	FileName string
	Source   domain.ImportSource
	DryRun   bool // apenas valida: não resolve produtos nem grava
	MaxRows  int  // 0 lê o arquivo inteiro
}

type OutcomeStatus string

const (
	OutcomeUpserted  OutcomeStatus = "upserted"
	OutcomeValidated OutcomeStatus = "validated"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeIgnored   OutcomeStatus = "ignored"
	OutcomeFailed    OutcomeStatus = "failed"
)

// RowOutcome é o resultado explícito do processamento de uma linha
type RowOutcome struct {
	Row    int
	Status OutcomeStatus
	Err    error
}

// Pipeline orquestra detecção, normalização, resolução e gravação de um arquivo.
// É imutável depois de criado e pode executar vários arquivos ao mesmo tempo.
type Pipeline struct {
	catalog    *domain.Catalog
	detector   *Detector
	normalizer *RecordNormalizer
	resolver   ItemResolver
	store      repository.SellthroughRepository
}

func NewPipeline(catalog *domain.Catalog, resolver ItemResolver, store repository.SellthroughRepository) *Pipeline {
	return &Pipeline{
		catalog:    catalog,
		detector:   NewDetector(catalog.Formats),
		normalizer: NewRecordNormalizer(catalog),
		resolver:   resolver,
		store:      store,
	}
}

// run guarda o estado mutável de uma única execução
type run struct {
	opts     RunOptions
	summary  *domain.RunSummary
	format   *domain.FormatSpec
	columns  ColumnIndex
	resolver ItemResolver
	logger   *logrus.Entry
}

// Run processa o arquivo inteiro. O resumo é sempre retornado; o erro só é diferente de nil
// quando a execução termina em Aborted. Linhas gravadas antes de uma falha de banco permanecem.
func (p *Pipeline) Run(ctx context.Context, src RowSource, opts RunOptions) (*domain.RunSummary, error) {
	r := &run{
		opts: opts,
		summary: &domain.RunSummary{
			RunID:     opts.RunID,
			FileName:  opts.FileName,
			Source:    opts.Source,
			State:     domain.RunStateIdle,
			DryRun:    opts.DryRun,
			Skipped:   []domain.SkippedRow{},
			StartedAt: time.Now(),
		},
		resolver: newMemoResolver(p.resolver),
		logger: logrus.WithFields(logrus.Fields{
			"run_id":    opts.RunID,
			"file_name": opts.FileName,
		}),
	}

	r.transition(domain.RunStateDetecting)

	header, err := src.Header()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return r.abort(fmt.Errorf("%w: arquivo sem cabeçalho", ErrUnknownFormat))
		}
		return r.abort(fmt.Errorf("%w: %v", ErrSourceRead, err))
	}

	r.format, r.columns, err = p.detector.Detect(header)
	if err != nil {
		return r.abort(err)
	}
	r.summary.FormatID = r.format.ID
	r.logger = r.logger.WithField("format_id", r.format.ID)

	r.transition(domain.RunStateProcessingRows)

	for opts.MaxRows <= 0 || r.summary.TotalRows < opts.MaxRows {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return r.abort(fmt.Errorf("%w: %v", ErrSourceRead, err))
		}

		outcome := p.processRow(ctx, r, row)
		switch outcome.Status {
		case OutcomeUpserted:
			r.summary.TotalRows++
			r.summary.Upserted++
		case OutcomeValidated:
			r.summary.TotalRows++
			r.summary.Validated++
		case OutcomeSkipped:
			r.summary.TotalRows++
			r.skip(row, outcome.Err)
		case OutcomeFailed:
			r.summary.TotalRows++
			return r.abort(fmt.Errorf("linha %d: %w", outcome.Row, outcome.Err))
		}
	}

	r.summary.FinishedAt = time.Now()
	r.transition(domain.RunStateCompleted)

	r.logger.WithFields(logrus.Fields{
		"total_rows": r.summary.TotalRows,
		"upserted":   r.summary.Upserted,
		"validated":  r.summary.Validated,
		"skipped":    len(r.summary.Skipped),
	}).Info("Importação concluída")

	return r.summary, nil
}

// processRow nunca propaga erros de linha: eles viram OutcomeSkipped
func (p *Pipeline) processRow(ctx context.Context, r *run, row *domain.ReportRow) RowOutcome {
	if isBlankRow(row.Values) {
		return RowOutcome{Row: row.Number, Status: OutcomeIgnored}
	}

	normalized, err := p.normalizer.Normalize(r.format, r.columns, *row)
	if err != nil {
		if IsRowError(err) {
			return RowOutcome{Row: row.Number, Status: OutcomeSkipped, Err: err}
		}
		return RowOutcome{Row: row.Number, Status: OutcomeFailed, Err: err}
	}

	if r.opts.DryRun {
		return RowOutcome{Row: row.Number, Status: OutcomeValidated}
	}

	itemID, err := r.resolver.Resolve(ctx, normalized.ChannelID, normalized.ProductCode, normalized.ProductName)
	if err != nil {
		if IsRowError(err) {
			return RowOutcome{Row: row.Number, Status: OutcomeSkipped, Err: err}
		}
		return RowOutcome{Row: row.Number, Status: OutcomeFailed, Err: err}
	}

	record := normalized.Record
	record.ItemID = itemID
	record.ImportRunID = r.opts.RunID

	if err := p.store.SaveOrUpdate(ctx, &record); err != nil {
		return RowOutcome{Row: row.Number, Status: OutcomeFailed, Err: fmt.Errorf("%w: %v", ErrStorage, err)}
	}

	return RowOutcome{Row: row.Number, Status: OutcomeUpserted}
}

func (r *run) transition(state domain.RunState) {
	r.logger.WithFields(logrus.Fields{
		"from": r.summary.State,
		"to":   state,
	}).Debug("Transição de estado da importação")
	r.summary.State = state
}

func (r *run) abort(err error) (*domain.RunSummary, error) {
	r.summary.Error = err.Error()
	r.summary.FinishedAt = time.Now()
	r.transition(domain.RunStateAborted)

	r.logger.WithError(err).WithFields(logrus.Fields{
		"total_rows": r.summary.TotalRows,
		"upserted":   r.summary.Upserted,
	}).Error("Importação abortada")

	return r.summary, err
}

func (r *run) skip(row *domain.ReportRow, err error) {
	skipped := domain.SkippedRow{
		Row:    row.Number,
		Kind:   ErrorKind(err),
		Detail: err.Error(),
		Data:   make(map[string]string, len(r.columns)),
	}
	for name, i := range r.columns {
		if i < len(row.Values) {
			skipped.Data[name] = row.Values[i]
		}
	}

	r.logger.WithFields(logrus.Fields{
		"row":  row.Number,
		"kind": skipped.Kind,
	}).Warn(skipped.Detail)

	r.summary.Skipped = append(r.summary.Skipped, skipped)
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
