// Package metrics expõe as métricas Prometheus das importações
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const namespace = "sellthrough"

var (
	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Execuções de importação por origem, formato e estado final.",
	}, []string{"source", "format", "state"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Linhas processadas por formato e resultado.",
	}, []string{"format", "outcome"})

	ImportSkippedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "skipped_rows_total",
		Help:      "Linhas descartadas por formato e tipo de erro.",
	}, []string{"format", "kind"})

	ImportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Duração das execuções de importação.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"format"})
)

// ObserveRun registra o resumo de uma execução
func ObserveRun(summary *domain.RunSummary) {
	format := summary.FormatID
	if format == "" {
		format = "unknown"
	}

	ImportRuns.WithLabelValues(string(summary.Source), format, string(summary.State)).Inc()
	ImportRows.WithLabelValues(format, "upserted").Add(float64(summary.Upserted))
	ImportRows.WithLabelValues(format, "validated").Add(float64(summary.Validated))
	ImportRows.WithLabelValues(format, "skipped").Add(float64(len(summary.Skipped)))

	for _, skipped := range summary.Skipped {
		ImportSkippedRows.WithLabelValues(format, skipped.Kind).Inc()
	}

	if !summary.FinishedAt.IsZero() {
		ImportDuration.WithLabelValues(format).Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
	}
}

// Handler expõe o registro padrão para o endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
