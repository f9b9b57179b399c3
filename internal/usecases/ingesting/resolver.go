package ingesting

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/infrastructure/repository"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

// ItemResolver resolve o código nativo de um canal para o produto interno
type ItemResolver interface {
	Resolve(ctx context.Context, channelID int, channelCode, displayName string) (int64, error)
}

// ChannelItemResolver delega a criação atômica do vínculo ao repositório.
// Não guarda estado, então pode ser compartilhado entre importações concorrentes.
type ChannelItemResolver struct {
	repo repository.ChannelItemRepository
}

func NewChannelItemResolver(repo repository.ChannelItemRepository) *ChannelItemResolver {
	return &ChannelItemResolver{repo: repo}
}

// Resolve retorna o produto vinculado a (channelID, channelCode). Um vínculo existente é
// devolvido sem alterações; displayName só é usado ao criar.
func (r *ChannelItemResolver) Resolve(ctx context.Context, channelID int, channelCode, displayName string) (int64, error) {
	code := strings.TrimSpace(channelCode)
	if code == "" {
		return 0, NewRowError(ErrMissingField, "product_code", channelCode, "")
	}

	item, err := r.repo.GetOrCreate(ctx, &domain.ChannelItem{
		ChannelID:   channelID,
		ChannelCode: code,
		ChannelName: strings.TrimSpace(displayName),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logrus.WithFields(logrus.Fields{
		"channel_id":   channelID,
		"channel_code": code,
		"item_id":      item.ItemID,
	}).Debug("Channel item resolvido")

	return item.ItemID, nil
}

type itemKey struct {
	channelID int
	code      string
}

// memoResolver evita consultar o banco de novo para códigos repetidos no mesmo arquivo.
// Vive apenas durante uma execução.
type memoResolver struct {
	next  ItemResolver
	items map[itemKey]int64
}

func newMemoResolver(next ItemResolver) *memoResolver {
	return &memoResolver{next: next, items: make(map[itemKey]int64)}
}

func (m *memoResolver) Resolve(ctx context.Context, channelID int, channelCode, displayName string) (int64, error) {
	key := itemKey{channelID: channelID, code: channelCode}
	if id, ok := m.items[key]; ok {
		return id, nil
	}

	id, err := m.next.Resolve(ctx, channelID, channelCode, displayName)
	if err != nil {
		return 0, err
	}

	m.items[key] = id
	return id, nil
}
