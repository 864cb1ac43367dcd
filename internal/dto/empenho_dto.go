package dto

import "github.com/shopspring/decimal"

type EmpenhoFilter struct {
	Classificacao string `form:"classificacao"`
	UASG          string `form:"uasg"`
	Search        string `form:"search"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=200"`
}

type CadastrarEmpenhoRequest struct {
	Numero            string          `json:"numero"              validate:"required,min=1,max=50"`
	ClienteUASG       string          `json:"cliente_uasg"        validate:"required"`
	Classificacao     string          `json:"classificacao"`
	Pregao            *string         `json:"pregao"`
	Item              *string         `json:"item"`
	Prioridade        string          `json:"prioridade"`
	ValorTotalEmpenho decimal.Decimal `json:"valor_total_empenho" validate:"min=0"`
	Observacao        *string         `json:"observacao"`
	Data              *string         `json:"data"                validate:"omitempty,datetime=2006-01-02"`
	Produtos          []EmpenhoProdutoRequest `json:"produtos" validate:"dive"`
}

type EmpenhoProdutoRequest struct {
	ProdutoID     uint            `json:"produto_id"     validate:"required"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"required"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" validate:"min=0"`
}

// AtualizarEmpenhoRequest updates the whole row in one transaction; the
// service checks existence and número uniqueness before writing.
type AtualizarEmpenhoRequest struct {
	Numero            string          `json:"numero"              validate:"required,min=1,max=50"`
	Classificacao     string          `json:"classificacao"       validate:"required"`
	Pregao            *string         `json:"pregao"`
	Item              *string         `json:"item"`
	Prioridade        string          `json:"prioridade"`
	ValorTotalEmpenho decimal.Decimal `json:"valor_total_empenho" validate:"min=0"`
	Observacao        *string         `json:"observacao"`
	Data              *string         `json:"data"                validate:"omitempty,datetime=2006-01-02"`
}

type AtualizarClassificacaoRequest struct {
	Classificacao string `json:"classificacao" validate:"required"`
}

type EmpenhoResponse struct {
	ID                uint            `json:"id"`
	Numero            string          `json:"numero"`
	ClienteUASG       string          `json:"cliente_uasg"`
	ClienteNome       string          `json:"cliente_nome,omitempty"`
	Classificacao     string          `json:"classificacao"`
	Pregao            *string         `json:"pregao"`
	Item              *string         `json:"item"`
	Prioridade        string          `json:"prioridade"`
	ValorTotalEmpenho decimal.Decimal `json:"valor_total_empenho"`
	Observacao        *string         `json:"observacao"`
	Data              *string         `json:"data"`
}

type EmpenhoListResponse struct {
	Data  []EmpenhoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
