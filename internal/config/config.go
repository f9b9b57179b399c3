package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Ingest   Ingest   `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Ingest struct {
	CatalogPath        string `mapstructure:"ingest_catalog_path"`
	DefaultCharset     string `mapstructure:"ingest_default_charset"`
	DryRunMaxRows      int    `mapstructure:"ingest_dry_run_max_rows"`
	MaxUploadSizeMB    int64  `mapstructure:"ingest_max_upload_size_mb"`
	InboxDir           string `mapstructure:"ingest_inbox_dir"`
	ProcessedDir       string `mapstructure:"ingest_processed_dir"`
	FailedDir          string `mapstructure:"ingest_failed_dir"`
	InboxCronSchedule  string `mapstructure:"ingest_inbox_cron"`
	InboxEnabled       bool   `mapstructure:"ingest_inbox_enabled"`
	MaxConcurrentFiles int    `mapstructure:"ingest_max_concurrent_files"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sellthrough?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL

	// Catálogo de formatos; vazio usa o catálogo embutido
	viper.SetDefault("INGEST_CATALOG_PATH", "")
	viper.SetDefault("INGEST_DEFAULT_CHARSET", "utf-8")
	viper.SetDefault("INGEST_DRY_RUN_MAX_ROWS", 10)    // linhas validadas em dry run via upload
	viper.SetDefault("INGEST_MAX_UPLOAD_SIZE_MB", 50)  // tamanho máximo do arquivo enviado
	viper.SetDefault("INGEST_INBOX_DIR", "data/inbox") // arquivos aguardando importação
	viper.SetDefault("INGEST_PROCESSED_DIR", "data/processed")
	viper.SetDefault("INGEST_FAILED_DIR", "data/failed")
	viper.SetDefault("INGEST_INBOX_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("INGEST_INBOX_ENABLED", false)
	viper.SetDefault("INGEST_MAX_CONCURRENT_FILES", 3) // 3 arquivos em paralelo

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Opcional, já que usamos godotenv
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
