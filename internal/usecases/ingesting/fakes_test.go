package ingesting

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/vfg2006/sellthrough-api/internal/domain"
)

// sliceSource entrega linhas em memória, numeradas como num arquivo com cabeçalho na linha 1
type sliceSource struct {
	header    []string
	rows      [][]string
	headerErr error
	rowErr    error
	failAt    int
	next      int
}

func newSliceSource(header []string, rows ...[]string) *sliceSource {
	return &sliceSource{header: header, rows: rows}
}

func (s *sliceSource) Header() ([]string, error) {
	if s.headerErr != nil {
		return nil, s.headerErr
	}
	return s.header, nil
}

func (s *sliceSource) Next() (*domain.ReportRow, error) {
	if s.rowErr != nil && s.next == s.failAt {
		return nil, s.rowErr
	}
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := &domain.ReportRow{Number: s.next + 2, Values: s.rows[s.next]}
	s.next++
	return row, nil
}

// fakeChannelItemRepository reproduz o INSERT ... ON CONFLICT com um mutex
type fakeChannelItemRepository struct {
	mu      sync.Mutex
	byKey   map[itemKey]*domain.ChannelItem
	items   map[string]int64
	nextID  int64
	inserts int
	err     error
}

func newFakeChannelItemRepository() *fakeChannelItemRepository {
	return &fakeChannelItemRepository{
		byKey: make(map[itemKey]*domain.ChannelItem),
		items: make(map[string]int64),
	}
}

func (f *fakeChannelItemRepository) GetOrCreate(_ context.Context, item *domain.ChannelItem) (*domain.ChannelItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	key := itemKey{channelID: item.ChannelID, code: item.ChannelCode}
	if existing, ok := f.byKey[key]; ok {
		copied := *existing
		return &copied, nil
	}

	itemID, ok := f.items[item.ChannelCode]
	if !ok {
		f.nextID++
		itemID = 1000 + f.nextID
		f.items[item.ChannelCode] = itemID
	}

	f.nextID++
	created := &domain.ChannelItem{
		ID:          f.nextID,
		ChannelID:   item.ChannelID,
		ChannelCode: item.ChannelCode,
		ChannelName: item.ChannelName,
		ItemID:      itemID,
	}
	f.byKey[key] = created
	f.inserts++

	copied := *created
	return &copied, nil
}

func (f *fakeChannelItemRepository) ListByChannel(_ context.Context, channelID int) ([]*domain.ChannelItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]*domain.ChannelItem, 0)
	for key, item := range f.byKey {
		if key.channelID == channelID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

type sellthroughKey struct {
	channelID int
	itemID    int64
	date      string
}

// fakeSellthroughStore guarda uma linha por chave, como o ON CONFLICT DO UPDATE
type fakeSellthroughStore struct {
	mu      sync.Mutex
	rows    map[sellthroughKey]domain.SellthroughRecord
	writes  int
	failOn  int
	failErr error
}

func newFakeSellthroughStore() *fakeSellthroughStore {
	return &fakeSellthroughStore{rows: make(map[sellthroughKey]domain.SellthroughRecord)}
}

func (f *fakeSellthroughStore) SaveOrUpdate(_ context.Context, record *domain.SellthroughRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes++
	if f.failErr != nil && f.writes == f.failOn {
		return f.failErr
	}

	key := sellthroughKey{channelID: record.ChannelID, itemID: record.ItemID, date: record.Date.Format("2006-01-02")}
	f.rows[key] = *record
	return nil
}

func (f *fakeSellthroughStore) snapshot() map[sellthroughKey]domain.SellthroughRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := make(map[sellthroughKey]domain.SellthroughRecord, len(f.rows))
	for k, v := range f.rows {
		copied[k] = v
	}
	return copied
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
