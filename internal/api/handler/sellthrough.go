package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sellthrough-api/infrastructure/reportfile"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"github.com/vfg2006/sellthrough-api/pkg/apiErrors"
	"github.com/vfg2006/sellthrough-api/pkg/log"
	"github.com/vfg2006/sellthrough-api/pkg/utils"
)

const (
	defaultRunsLimit = 50
	maxRunsLimit     = 500
	multipartMemory  = 8 << 20
)

// ImportRunErrorsResponse é a execução com as linhas descartadas
type ImportRunErrorsResponse struct {
	Run    *domain.ImportRun     `json:"run"`
	Errors []*domain.ImportError `json:"errors"`
}

// UploadReport importa o relatório enviado no campo multipart "file"
func UploadReport(service ingesting.Importer, cfg config.Ingest) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSizeMB<<20)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrReportTooLarge, "Arquivo acima do limite permitido", map[string]int64{"max_size_mb": cfg.MaxUploadSizeMB})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição multipart inválida", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		opts := ingesting.RunOptions{
			FileName: header.Filename,
			Source:   domain.ImportSourceUpload,
		}

		if value := r.FormValue("dry_run"); value != "" {
			opts.DryRun, err = strconv.ParseBool(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "dry_run deve ser true ou false", nil)
				return
			}
		}

		if value := r.FormValue("max_rows"); value != "" {
			opts.MaxRows, err = strconv.Atoi(value)
			if err != nil || opts.MaxRows < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "max_rows deve ser um inteiro positivo", nil)
				return
			}
		} else if opts.DryRun {
			opts.MaxRows = cfg.DryRunMaxRows
		}

		charset := r.FormValue("charset")
		if charset == "" {
			charset = cfg.DefaultCharset
		}

		reader, err := reportfile.NewReader(header.Filename, file, charset)
		if err != nil {
			logger.WithError(err).WithField("file_name", header.Filename).Warn("Arquivo enviado não pôde ser lido")
			apiErrors.WriteError(w, apiErrors.ErrUnreadableReport, err.Error(), nil)
			return
		}
		defer reader.Close()

		summary, err := service.Import(r.Context(), reader, opts)
		if err != nil {
			code := importErrorCode(err)
			logger.WithError(err).WithFields(log.Fields{
				"file_name": header.Filename,
				"code":      code,
			}).Warn("Importação abortada")
			apiErrors.WriteError(w, code, err.Error(), summary)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	})
}

func importErrorCode(err error) string {
	switch {
	case errors.Is(err, ingesting.ErrUnknownFormat):
		return apiErrors.ErrUnknownReportFormat
	case errors.Is(err, ingesting.ErrAmbiguousFormat):
		return apiErrors.ErrAmbiguousReportFormat
	case errors.Is(err, ingesting.ErrSourceRead):
		return apiErrors.ErrUnreadableReport
	case errors.Is(err, ingesting.ErrStorage):
		return apiErrors.ErrDatabaseOperation
	}
	return apiErrors.ErrInternalServer
}

// ListImportRuns lista as execuções mais recentes. Aceita since (YYYY-MM-DD) e limit.
func ListImportRuns(service ingesting.Importer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		since, err := utils.ParseDate(query.Get("since"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since deve estar no formato YYYY-MM-DD", nil)
			return
		}

		limit := defaultRunsLimit
		if value := query.Get("limit"); value != "" {
			limit, err = strconv.Atoi(value)
			if err != nil || limit <= 0 || limit > maxRunsLimit {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve estar entre 1 e 500", nil)
				return
			}
		}

		runs, err := service.ListRuns(r.Context(), since, limit)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar execuções")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, runs)
	})
}

// GetImportRunErrors retorna a execução e as linhas descartadas
func GetImportRunErrors(service ingesting.Importer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger := log.ForContext(log.WithRunID(r.Context(), id))

		run, err := service.GetRun(r.Context(), id)
		if err != nil {
			logger.WithError(err).Error("Erro ao buscar execução")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar execução", nil)
			return
		}
		if run == nil {
			apiErrors.WriteError(w, apiErrors.ErrImportRunNotFound, "Execução não encontrada", nil)
			return
		}

		importErrors, err := service.ListRunErrors(r.Context(), id)
		if err != nil {
			logger.WithError(err).Error("Erro ao listar erros da execução")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar erros da execução", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, ImportRunErrorsResponse{Run: run, Errors: importErrors})
	})
}

// ListFormats lista os formatos de relatório reconhecidos
func ListFormats(service ingesting.Importer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.Formats())
	})
}

// ListChannelItems lista os vínculos de produtos de um canal
func ListChannelItems(service ingesting.Importer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelID, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil || channelID <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id do canal inválido", nil)
			return
		}

		items, err := service.ListChannelItems(r.Context(), channelID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar produtos do canal")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar produtos do canal", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, items)
	})
}
