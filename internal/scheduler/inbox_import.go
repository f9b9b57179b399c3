package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/infrastructure/reportfile"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"golang.org/x/sync/errgroup"
)

// errImportInterrupted marca falhas que não dependem do conteúdo do arquivo
var errImportInterrupted = errors.New("import interrupted")

// InboxImportConfig representa a configuração da importação agendada
type InboxImportConfig struct {
	CronSchedule       string
	InboxDir           string
	ProcessedDir       string
	FailedDir          string
	Charset            string
	MaxConcurrentFiles int
	Enabled            bool
}

// InboxResult resume uma varredura da pasta de entrada
type InboxResult struct {
	Files     int `json:"files"`
	Completed int `json:"completed"`
	Aborted   int `json:"aborted"`
	Retry     int `json:"retry"` // mantidos na pasta de entrada após falha do banco
}

type fileOutcome int

const (
	fileCompleted fileOutcome = iota
	fileAborted
	fileRetry
)

// InboxImportService importa periodicamente os relatórios deixados na pasta de entrada.
// Cada arquivo é uma execução independente; arquivos concluídos vão para processed e arquivos
// inválidos para failed. Falhas de banco deixam o arquivo na pasta para a próxima varredura.
type InboxImportService struct {
	scheduler           *gocron.Scheduler
	config              InboxImportConfig
	importer            ingesting.Importer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          InboxResult
}

func NewInboxImportService(importer ingesting.Importer, appConfig *config.Config) *InboxImportService {
	inboxConfig := InboxImportConfig{
		CronSchedule:       appConfig.Ingest.InboxCronSchedule,
		InboxDir:           appConfig.Ingest.InboxDir,
		ProcessedDir:       appConfig.Ingest.ProcessedDir,
		FailedDir:          appConfig.Ingest.FailedDir,
		Charset:            appConfig.Ingest.DefaultCharset,
		MaxConcurrentFiles: appConfig.Ingest.MaxConcurrentFiles,
		Enabled:            appConfig.Ingest.InboxEnabled,
	}
	if inboxConfig.MaxConcurrentFiles <= 0 {
		inboxConfig.MaxConcurrentFiles = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":        inboxConfig.CronSchedule,
		"inbox_dir":            inboxConfig.InboxDir,
		"max_concurrent_files": inboxConfig.MaxConcurrentFiles,
		"sync_enabled":         inboxConfig.Enabled,
	}).Info("Configuração da importação agendada carregada")

	return &InboxImportService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    inboxConfig,
		importer:  importer,
	}
}

// Start inicia o agendador
func (s *InboxImportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Importação agendada desabilitada por configuração")
		return nil
	}

	for _, dir := range []string{s.config.InboxDir, s.config.ProcessedDir, s.config.FailedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação da pasta de entrada")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runImport(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação da pasta de entrada: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação da pasta de entrada")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *InboxImportService) runImport(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação da pasta de entrada já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.ImportInbox(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastResult = result
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Erro na importação da pasta de entrada")
	}
}

// ImportInbox processa todos os arquivos presentes na pasta de entrada e espera terminar
func (s *InboxImportService) ImportInbox(ctx context.Context) (InboxResult, error) {
	files, err := s.pendingFiles()
	if err != nil {
		return InboxResult{}, err
	}

	result := InboxResult{Files: len(files)}
	if len(files) == 0 {
		logrus.Debug("Nenhum arquivo na pasta de entrada")
		return result, nil
	}

	startTime := time.Now()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrentFiles)

	for _, path := range files {
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			outcome := s.processFile(gctx, path)

			mu.Lock()
			switch outcome {
			case fileCompleted:
				result.Completed++
			case fileAborted:
				result.Aborted++
			case fileRetry:
				result.Retry++
			}
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"files":     result.Files,
		"completed": result.Completed,
		"aborted":   result.Aborted,
		"retry":     result.Retry,
	}).Info("Importação da pasta de entrada concluída")

	return result, err
}

// pendingFiles lista os arquivos da pasta de entrada em ordem alfabética, ignorando ocultos
func (s *InboxImportService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.InboxDir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pasta de entrada: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(s.config.InboxDir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// processFile importa um arquivo e o move conforme o resultado
func (s *InboxImportService) processFile(ctx context.Context, path string) fileOutcome {
	name := filepath.Base(path)
	logger := logrus.WithField("file_name", name)

	summary, err := s.importFile(ctx, path)

	outcome, destDir := fileCompleted, s.config.ProcessedDir
	switch {
	case err == nil:
	case errors.Is(err, errImportInterrupted):
		logger.WithError(err).Error("Importação interrompida; arquivo mantido na pasta de entrada")
		return fileRetry
	default:
		outcome, destDir = fileAborted, s.config.FailedDir
		logger.WithError(err).Warn("Arquivo da pasta de entrada não importado")
	}

	dest, moveErr := moveFile(path, destDir, time.Now())
	if moveErr != nil {
		logger.WithError(moveErr).Error("Erro ao mover arquivo importado")
		return outcome
	}

	fields := logrus.Fields{"destination": dest}
	if summary != nil {
		fields["run_id"] = summary.RunID
		fields["upserted"] = summary.Upserted
		fields["skipped"] = len(summary.Skipped)
	}
	logger.WithFields(fields).Info("Arquivo da pasta de entrada processado")

	return outcome
}

func (s *InboxImportService) importFile(ctx context.Context, path string) (*domain.RunSummary, error) {
	reader, err := reportfile.Open(path, s.config.Charset)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	summary, err := s.importer.Import(ctx, reader, ingesting.RunOptions{
		FileName: filepath.Base(path),
		Source:   domain.ImportSourceInbox,
	})
	if err != nil && !ingesting.IsFileError(err) {
		return summary, fmt.Errorf("%w: %w", errImportInterrupted, err)
	}
	return summary, err
}

const movedFileLayout = "20060102T150405"

// moveFile move o arquivo para dir com o prefixo UTC de now. Um destino já existente
// recebe um sufixo numérico em vez de ser sobrescrito.
func moveFile(path, dir string, now time.Time) (string, error) {
	name := now.UTC().Format(movedFileLayout) + "_" + filepath.Base(path)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	dest := filepath.Join(dir, name)
	for i := 1; ; i++ {
		_, err := os.Lstat(dest)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", err
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}

	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// TriggerManualSync inicia manualmente uma importação da pasta de entrada
func (s *InboxImportService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação da pasta de entrada já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual da pasta de entrada")
	go s.runImport(context.Background())
}

// GetStatus retorna o status atual da importação agendada
func (s *InboxImportService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"inbox_dir":              s.config.InboxDir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
