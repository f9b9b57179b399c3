// Package reportfile lê os relatórios de parceiros (CSV ou XLSX) linha a linha
package reportfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

var ErrUnsupportedFile = errors.New("unsupported report file type")

// Reader entrega o cabeçalho e depois as linhas do relatório. Next retorna io.EOF no fim.
type Reader interface {
	Header() ([]string, error)
	Next() (*domain.ReportRow, error)
	io.Closer
}

// Supported informa se a extensão do arquivo tem leitor
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".xlsx":
		return true
	}
	return false
}

// Open abre o arquivo do disco. O leitor retornado fecha o arquivo.
func Open(path, charset string) (Reader, error) {
	if !Supported(path) {
		return nil, errors.Wrapf(ErrUnsupportedFile, "arquivo %s", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir relatório")
	}

	reader, err := NewReader(path, file, charset)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &fileReader{Reader: reader, file: file}, nil
}

// NewReader escolhe o leitor pela extensão de name. Não fecha r.
func NewReader(name string, r io.Reader, charset string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return NewCSVReader(r, charset)
	case ".xlsx":
		return NewXLSXReader(r)
	}
	return nil, errors.Wrapf(ErrUnsupportedFile, "arquivo %s", filepath.Base(name))
}

type fileReader struct {
	Reader
	file *os.File
}

func (f *fileReader) Close() error {
	readerErr := f.Reader.Close()
	if err := f.file.Close(); err != nil {
		return errors.Wrap(err, "erro ao fechar relatório")
	}
	return readerErr
}
