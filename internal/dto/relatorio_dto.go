package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendaClienteRow is one line of the per-client sales report. Whatever tier
// produced it, the field set is identical: absent source data arrives as the
// documented defaults (0, "", placeholder text), never as nulls that shift
// column meaning.
type VendaClienteRow struct {
	VendaID                uint            `gorm:"column:venda_id" json:"venda_id"`
	NumeroNF               string          `gorm:"column:numero_nf" json:"numero_nf"`
	DataVenda              time.Time       `gorm:"column:data_venda" json:"data_venda"`
	ValorTotal             decimal.Decimal `gorm:"column:valor_total" json:"valor_total"`
	StatusPagamento        string          `gorm:"column:status_pagamento" json:"status_pagamento"`
	Observacao             string          `gorm:"column:observacao" json:"observacao"`
	ClienteNome            string          `gorm:"column:cliente_nome" json:"cliente_nome"`
	ClienteUASG            string          `gorm:"column:cliente_uasg" json:"cliente_uasg"`
	ClienteCNPJ            string          `gorm:"column:cliente_cnpj" json:"cliente_cnpj"`
	TransportadoraNome     string          `gorm:"column:transportadora_nome" json:"transportadora_nome"`
	TransportadoraCNPJ     string          `gorm:"column:transportadora_cnpj" json:"transportadora_cnpj"`
	TransportadoraTelefone string          `gorm:"column:transportadora_telefone" json:"transportadora_telefone"`
	ProdutoID              uint            `gorm:"column:produto_id" json:"produto_id"`
	Quantidade             decimal.Decimal `gorm:"column:quantidade" json:"quantidade"`
	ValorUnitario          decimal.Decimal `gorm:"column:valor_unitario" json:"valor_unitario"`
	ValorProduto           decimal.Decimal `gorm:"column:valor_produto" json:"valor_produto"`
	ValorCusto             decimal.Decimal `gorm:"column:valor_custo" json:"valor_custo"`
	ProdutoNome            string          `gorm:"column:produto_nome" json:"produto_nome"`
	ProdutoCodigo          string          `gorm:"column:produto_codigo" json:"produto_codigo"`
	ProdutoDescricao       string          `gorm:"column:produto_descricao" json:"produto_descricao"`
	LucroProduto           decimal.Decimal `gorm:"column:lucro_produto" json:"lucro_produto"`
	PercentualLucro        decimal.Decimal `gorm:"column:percentual_lucro" json:"percentual_lucro"`
}

// VendaClienteResumo is the single-pass aggregation over the report rows.
type VendaClienteResumo struct {
	TotalVendas      int             `json:"total_vendas"`
	ValorTotalVendas decimal.Decimal `json:"valor_total_vendas"`
	LucroTotal       decimal.Decimal `json:"lucro_total"`
	VendasRecebidas  int             `json:"vendas_recebidas"`
	VendasPendentes  int             `json:"vendas_pendentes"`
}

// VendaClienteReport is the full report envelope. Erro is set when report
// generation failed at the terminal tier — the rest of the envelope is still
// a valid (empty) report so the caller never renders a broken page.
type VendaClienteReport struct {
	Cliente *ClienteResponse   `json:"cliente,omitempty"`
	Vendas  []VendaClienteRow  `json:"vendas"`
	Resumo  VendaClienteResumo `json:"resumo"`
	Erro    string             `json:"erro,omitempty"`
}

// DashboardResponse aggregates the numbers shown on the landing dashboard.
type DashboardResponse struct {
	TotalClientes        int64                      `json:"total_clientes"`
	TotalVendas          int64                      `json:"total_vendas"`
	ValorTotalVendas     decimal.Decimal            `json:"valor_total_vendas"`
	VendasRecebidas      int64                      `json:"vendas_recebidas"`
	VendasPendentes      int64                      `json:"vendas_pendentes"`
	EmpenhosPorStatus    map[string]int64           `json:"empenhos_por_classificacao"`
	Estoque              EstoqueResumo              `json:"estoque"`
}
