package reportfile

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const defaultCharset = "utf-8"

type csvReader struct {
	reader *csv.Reader
	header []string
	read   bool
}

// NewCSVReader decodifica o arquivo no charset informado. Um BOM UTF-8 ou UTF-16
// tem precedência sobre o charset e é removido.
func NewCSVReader(r io.Reader, charset string) (Reader, error) {
	if strings.TrimSpace(charset) == "" {
		charset = defaultCharset
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrapf(err, "charset %q não suportado", charset)
	}

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return &csvReader{reader: reader}, nil
}

func (c *csvReader) Header() ([]string, error) {
	if c.read {
		return c.header, nil
	}

	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho")
	}

	c.header = record
	c.read = true
	return c.header, nil
}

func (c *csvReader) Next() (*domain.ReportRow, error) {
	if !c.read {
		if _, err := c.Header(); err != nil {
			return nil, err
		}
	}

	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler linha")
	}

	line, _ := c.reader.FieldPos(0)
	return &domain.ReportRow{Number: line, Values: record}, nil
}

func (c *csvReader) Close() error {
	return nil
}
