package ingesting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const utf8BOM = "\ufeff"

// ColumnIndex mapeia o nome da coluna para a sua posição no cabeçalho
type ColumnIndex map[string]int

// Value retorna o valor da coluna na linha, vazio se a coluna não existir
func (c ColumnIndex) Value(values []string, column string) string {
	if column == "" {
		return ""
	}
	i, ok := c[column]
	if !ok || i >= len(values) {
		return ""
	}
	return values[i]
}

// Detector classifica o cabeçalho de um arquivo entre os formatos conhecidos
type Detector struct {
	formats []domain.FormatSpec
}

func NewDetector(formats []domain.FormatSpec) *Detector {
	return &Detector{formats: formats}
}

// Detect retorna o único formato cujas colunas obrigatórias estão todas no cabeçalho.
// Nomes são comparados exatamente, após remover BOM e espaços nas pontas.
func (d *Detector) Detect(header []string) (*domain.FormatSpec, ColumnIndex, error) {
	index := NewColumnIndex(header)

	var matches []*domain.FormatSpec
	for i := range d.formats {
		format := &d.formats[i]
		if index.hasAll(format.RequiredHeaders) {
			matches = append(matches, format)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil, fmt.Errorf("%w: cabeçalho [%s]", ErrUnknownFormat, strings.Join(index.names(), ", "))
	case 1:
		return matches[0], index, nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrAmbiguousFormat, strings.Join(ids, ", "))
	}
}

// NewColumnIndex monta o índice de colunas. Em nomes repetidos vale a primeira ocorrência.
func NewColumnIndex(header []string) ColumnIndex {
	index := make(ColumnIndex, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func (c ColumnIndex) hasAll(names []string) bool {
	for _, name := range names {
		if _, ok := c[name]; !ok {
			return false
		}
	}
	return true
}

func (c ColumnIndex) names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return c[names[i]] < c[names[j]] })
	return names
}
