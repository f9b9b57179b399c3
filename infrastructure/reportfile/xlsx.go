package reportfile

import (
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// xlsxReader lê a primeira aba com valores brutos, então datas seriais chegam como números
type xlsxReader struct {
	file   *excelize.File
	rows   *excelize.Rows
	number int
	header []string
	read   bool
}

func NewXLSXReader(r io.Reader) (Reader, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		file.Close()
		return nil, errors.New("planilha sem abas")
	}

	rows, err := file.Rows(sheets[0])
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "erro ao ler aba %s", sheets[0])
	}

	return &xlsxReader{file: file, rows: rows}, nil
}

func (x *xlsxReader) Header() ([]string, error) {
	if x.read {
		return x.header, nil
	}

	// linhas vazias antes do cabeçalho são comuns em exportações
	for {
		values, err := x.nextValues()
		if err != nil {
			return nil, err
		}
		if !isEmpty(values) {
			x.header = values
			x.read = true
			return x.header, nil
		}
	}
}

func (x *xlsxReader) Next() (*domain.ReportRow, error) {
	if !x.read {
		if _, err := x.Header(); err != nil {
			return nil, err
		}
	}

	values, err := x.nextValues()
	if err != nil {
		return nil, err
	}
	return &domain.ReportRow{Number: x.number, Values: values}, nil
}

func (x *xlsxReader) nextValues() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, errors.Wrap(err, "erro ao ler planilha")
		}
		return nil, io.EOF
	}
	x.number++

	values, err := x.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler linha %d", x.number)
	}
	return values, nil
}

func (x *xlsxReader) Close() error {
	if err := x.rows.Close(); err != nil {
		x.file.Close()
		return errors.Wrap(err, "erro ao fechar planilha")
	}
	return x.file.Close()
}

func isEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
