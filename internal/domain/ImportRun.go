package domain

import "time"

// RunState é o estado da máquina de estados de uma importação
type RunState string

const (
	RunStateIdle           RunState = "idle"
	RunStateDetecting      RunState = "detecting"
	RunStateProcessingRows RunState = "processing_rows"
	RunStateCompleted      RunState = "completed"
	RunStateAborted        RunState = "aborted"
)

// ImportSource identifica quem disparou a importação
type ImportSource string

const (
	ImportSourceUpload ImportSource = "upload"
	ImportSourceInbox  ImportSource = "inbox"
	ImportSourceCLI    ImportSource = "cli"
)

// SkippedRow é uma linha descartada com o motivo
type SkippedRow struct {
	Row    int               `json:"row"`
	Kind   string            `json:"kind"`
	Detail string            `json:"detail"`
	Data   map[string]string `json:"data,omitempty"`
}

// RunSummary é o resultado de uma execução do pipeline
type RunSummary struct {
	RunID      string       `json:"run_id"`
	FileName   string       `json:"file_name"`
	Source     ImportSource `json:"source"`
	FormatID   string       `json:"format_id,omitempty"`
	State      RunState     `json:"state"`
	DryRun     bool         `json:"dry_run"`
	TotalRows  int          `json:"total_rows"`
	Upserted   int          `json:"upserted"`
	Validated  int          `json:"validated"`
	Skipped    []SkippedRow `json:"skipped"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// ImportRun é o registro persistido de uma execução
type ImportRun struct {
	ID           string       `json:"id"`
	FileName     string       `json:"file_name"`
	Source       ImportSource `json:"source"`
	FormatID     string       `json:"format_id"`
	State        RunState     `json:"state"`
	DryRun       bool         `json:"dry_run"`
	TotalRows    int          `json:"total_rows"`
	Upserted     int          `json:"upserted"`
	Skipped      int          `json:"skipped"`
	ErrorMessage string       `json:"error_message,omitempty"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
}

// ImportError é uma linha descartada persistida
type ImportError struct {
	ID            int64             `json:"id"`
	ImportRunID   string            `json:"import_run_id"`
	ImportChannel string            `json:"import_channel"`
	RowNumber     int               `json:"row_number"`
	ErrorKind     string            `json:"error_kind"`
	ErrorMessage  string            `json:"error_message"`
	ErrorData     map[string]string `json:"error_data"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToImportRun converte o resumo no registro persistido
func (s *RunSummary) ToImportRun() *ImportRun {
	return &ImportRun{
		ID:           s.RunID,
		FileName:     s.FileName,
		Source:       s.Source,
		FormatID:     s.FormatID,
		State:        s.State,
		DryRun:       s.DryRun,
		TotalRows:    s.TotalRows,
		Upserted:     s.Upserted,
		Skipped:      len(s.Skipped),
		ErrorMessage: s.Error,
		StartedAt:    s.StartedAt,
		FinishedAt:   s.FinishedAt,
	}
}
