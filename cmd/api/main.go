package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository"
	"github.com/vfg2006/sellthrough-api/internal/api"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/scheduler"
	"github.com/vfg2006/sellthrough-api/internal/usecases/authenticating"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	catalog, err := config.LoadCatalog(cfg.Ingest.CatalogPath)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar catálogo de formatos")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	importer := ingesting.NewService(
		catalog,
		repository.NewChannelItemRepository(pgConn),
		repository.NewSellthroughRepository(pgConn),
		repository.NewImportRunRepository(pgConn),
		repository.NewImportErrorRepository(pgConn),
	)

	authenticator := authenticating.NewService(cfg)

	inboxService := scheduler.NewInboxImportService(importer, cfg)
	if err := inboxService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação da pasta de entrada")
	}

	server, err := api.New(cfg, pgConn, importer, authenticator, inboxService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
