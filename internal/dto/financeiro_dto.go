package dto

import "github.com/shopspring/decimal"

// AtualizarStatusRequest is the body of POST /v1/financeiro/status-pagamento.
// Senha is only required when Status is "Não Recebido" (the guarded reversal);
// the service enforces that, not the binding.
type AtualizarStatusRequest struct {
	ID     uint   `json:"id"     validate:"required"`
	Status string `json:"status" validate:"required"`
	Senha  string `json:"senha"`
}

// StatusResult is the {success, error} envelope the presentation layer
// expects from every financial mutation.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ContaRecebidaFilter is bound from the query string of
// GET /v1/financeiro/contas-recebidas.
type ContaRecebidaFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=200"`
}

type ContaRecebidaItem struct {
	VendaID         uint            `gorm:"column:venda_id" json:"venda_id"`
	NumeroNF        string          `gorm:"column:numero_nf" json:"numero_nf"`
	ClienteUASG     string          `gorm:"column:cliente_uasg" json:"cliente_uasg"`
	ClienteNome     string          `gorm:"column:cliente_nome" json:"cliente_nome"`
	ValorTotal      decimal.Decimal `gorm:"column:valor_total" json:"valor_total"`
	StatusPagamento string          `gorm:"column:status_pagamento" json:"status_pagamento"`
}

type ContaRecebidaListResponse struct {
	Data  []ContaRecebidaItem `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
