// Command import ingere um único relatório de sell-through e imprime o resumo em JSON.
//
//	import --file relatorio.csv [--dry-run] [--max-rows N] [--charset windows-1252] [--catalog catalogo.yaml]
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/infrastructure/reportfile"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	os.Exit(importMain(os.Args[1:]))
}

// importMain devolve o código de saída em vez de encerrar o processo, para que os defers rodem
func importMain(args []string) int {
	flags := pflag.NewFlagSet("import", pflag.ContinueOnError)
	file := flags.String("file", "", "relatório CSV ou XLSX a importar")
	dryRun := flags.Bool("dry-run", false, "apenas valida as linhas, sem gravar")
	maxRows := flags.Int("max-rows", 0, "processa no máximo N linhas (0 lê tudo)")
	flags.String("charset", "", "charset do CSV (padrão INGEST_DEFAULT_CHARSET)")
	flags.String("catalog", "", "catálogo de formatos em YAML (padrão INGEST_CATALOG_PATH)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	// logs vão para stderr; stdout fica só com o resumo
	logrus.SetOutput(os.Stderr)

	if *file == "" {
		flags.Usage()
		return 2
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar configuração")
		return 1
	}

	// flags informadas sobrescrevem as variáveis de ambiente
	if flags.Changed("charset") {
		cfg.Ingest.DefaultCharset, _ = flags.GetString("charset")
	}
	if flags.Changed("catalog") {
		cfg.Ingest.CatalogPath, _ = flags.GetString("catalog")
	}
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	catalog, err := config.LoadCatalog(cfg.Ingest.CatalogPath)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar catálogo de formatos")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Error("Erro ao conectar ao PostgreSQL")
		return 1
	}
	defer conn.Close()

	importer := ingesting.NewService(
		catalog,
		repository.NewChannelItemRepository(conn),
		repository.NewSellthroughRepository(conn),
		repository.NewImportRunRepository(conn),
		repository.NewImportErrorRepository(conn),
	)

	return run(ctx, importer, os.Stdout, *file, cfg.Ingest.DefaultCharset, ingesting.RunOptions{
		FileName: filepath.Base(*file),
		Source:   domain.ImportSourceCLI,
		DryRun:   *dryRun,
		MaxRows:  *maxRows,
	})
}

// run importa o arquivo e devolve o código de saída: 0 concluído, 1 abortado
func run(ctx context.Context, importer ingesting.Importer, out io.Writer, path, charset string, opts ingesting.RunOptions) int {
	reader, err := reportfile.Open(path, charset)
	if err != nil {
		logrus.WithError(err).Error("Erro ao abrir relatório")
		return 1
	}
	defer reader.Close()

	summary, runErr := importer.Import(ctx, reader, opts)

	if summary != nil {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			logrus.WithError(err).Error("Erro ao imprimir resumo")
		}
	}

	if runErr != nil {
		logrus.WithError(runErr).Error("Importação abortada")
		return 1
	}
	return 0
}
