package dto

import "github.com/shopspring/decimal"

// Health buckets for derived stock, evaluated in this precedence order:
// sem_estoque → critico → alto → normal.
const (
	SituacaoSemEstoque = "sem_estoque"
	SituacaoCritico    = "critico"
	SituacaoAlto       = "alto"
	SituacaoNormal     = "normal"
)

// EstoqueProdutoRow is scanned straight from the derived-stock query.
// EstoqueAtual is signed: an over-sold product goes negative and stays
// negative — it is never clamped.
type EstoqueProdutoRow struct {
	ProdutoID      uint            `gorm:"column:id" json:"produto_id"`
	Nome           string          `gorm:"column:nome" json:"nome"`
	PrecoUnitario  decimal.Decimal `gorm:"column:preco_unitario" json:"preco_unitario"`
	EstoqueInicial decimal.Decimal `gorm:"column:estoque_inicial" json:"estoque_inicial"`
	EstoqueMinimo  decimal.Decimal `gorm:"column:estoque_minimo" json:"estoque_minimo"`
	TotalEntradas  decimal.Decimal `gorm:"column:total_entradas" json:"total_entradas"`
	TotalSaidas    decimal.Decimal `gorm:"column:total_saidas" json:"total_saidas"`
	EstoqueAtual   decimal.Decimal `gorm:"column:estoque_atual" json:"estoque_atual"`
}

// EstoqueProdutoResponse adds the derived value and bucket to a row.
type EstoqueProdutoResponse struct {
	EstoqueProdutoRow
	ValorEstoque decimal.Decimal `json:"valor_estoque"`
	Situacao     string          `json:"situacao"`
}

// EstoqueResumo are the batch aggregates; the bucket counts always sum to
// TotalProdutos.
type EstoqueResumo struct {
	TotalProdutos    int             `json:"total_produtos"`
	QuantidadeTotal  decimal.Decimal `json:"quantidade_total"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
	ProdutosCriticos int             `json:"produtos_criticos"`
	PorSituacao      map[string]int  `json:"por_situacao"`
}

type EstoqueReportResponse struct {
	Produtos []EstoqueProdutoResponse `json:"produtos"`
	Resumo   EstoqueResumo            `json:"resumo"`
}
