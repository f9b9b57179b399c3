package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/internal/api/handler"
	"github.com/vfg2006/sellthrough-api/internal/api/handler/router"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/scheduler"
	"github.com/vfg2006/sellthrough-api/internal/usecases/authenticating"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"github.com/vfg2006/sellthrough-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	db handler.Pinger,
	importer ingesting.Importer,
	authenticator authenticating.Authenticator,
	inboxService *scheduler.InboxImportService,
) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if inboxService != nil {
		cronServices[handler.CronJobTypeInbox] = inboxService
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, db, importer, authenticator, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta as rotas com a cadeia de middlewares global
func NewHandler(
	cfg *config.Config,
	db handler.Pinger,
	importer ingesting.Importer,
	authenticator authenticating.Authenticator,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Sellthrough(importer, cfg.Ingest)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.App.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
