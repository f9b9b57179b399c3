// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Channel é um ponto de venda ou distribuidor que envia relatórios semanais
type Channel struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ChannelItem liga o código nativo de um canal a um produto interno.
// Existe no máximo um por (ChannelID, ChannelCode).
type ChannelItem struct {
	ID          int64     `json:"id"`
	ChannelID   int       `json:"channel_id"`
	ItemID      int64     `json:"item_id"`
	ChannelCode string    `json:"channel_code"`
	ChannelName string    `json:"channel_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item é o produto canônico do catálogo
type Item struct {
	ID        int64     `json:"id"`
	EssorCode string    `json:"essor_code"`
	EssorName string    `json:"essor_name"`
	BrandID   *int64    `json:"brand_id"`
	CreatedAt time.Time `json:"created_at"`
}
