package dto

import "github.com/shopspring/decimal"

type CadastrarProdutoRequest struct {
	Nome           string           `json:"nome"            validate:"required,min=2,max=200"`
	Codigo         *string          `json:"codigo"`
	Descricao      *string          `json:"descricao"`
	PrecoUnitario  decimal.Decimal  `json:"preco_unitario"  validate:"min=0"`
	EstoqueInicial decimal.Decimal  `json:"estoque_inicial" validate:"min=0"`
	EstoqueMinimo  decimal.Decimal  `json:"estoque_minimo"  validate:"min=0"`
	Fornecedor     *string          `json:"fornecedor"`
}

type ProdutoResponse struct {
	ID             uint            `json:"id"`
	Nome           string          `json:"nome"`
	Codigo         *string         `json:"codigo"`
	Descricao      *string         `json:"descricao"`
	PrecoUnitario  decimal.Decimal `json:"preco_unitario"`
	EstoqueInicial decimal.Decimal `json:"estoque_inicial"`
	EstoqueMinimo  decimal.Decimal `json:"estoque_minimo"`
	Fornecedor     *string         `json:"fornecedor"`
}
