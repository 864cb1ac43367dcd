package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classificações válidas de um empenho. O ciclo de vida do empenho é
// independente do status de pagamento da venda — aqui o estado pendente
// chama-se "Pendente" mesmo.
const (
	ClassificacaoPendente  = "Pendente"
	ClassificacaoFaturado  = "Faturado"
	ClassificacaoEntregue  = "Entregue"
	ClassificacaoLiquidado = "Liquidado"
	ClassificacaoPago      = "Pago"
	ClassificacaoCancelado = "Cancelado"
)

var classificacoesValidas = map[string]bool{
	ClassificacaoPendente:  true,
	ClassificacaoFaturado:  true,
	ClassificacaoEntregue:  true,
	ClassificacaoLiquidado: true,
	ClassificacaoPago:      true,
	ClassificacaoCancelado: true,
}

// ClassificacaoValida reporta se o valor pertence ao conjunto fixo de seis
// classificações. O endpoint de atualização rejeita qualquer outro valor sem
// tocar no banco.
func ClassificacaoValida(c string) bool { return classificacoesValidas[c] }

// Empenho é um compromisso orçamentário (ordem de compra) de um cliente.
type Empenho struct {
	ID                uint   `gorm:"primaryKey"`
	Numero            string `gorm:"uniqueIndex;not null"`
	ClienteUASG       string `gorm:"column:cliente_uasg;index;not null"`
	Classificacao     string `gorm:"not null;default:'Pendente'"`
	Pregao            *string
	Item              *string
	Prioridade        string          `gorm:"not null;default:'Normal'"`
	ValorTotalEmpenho decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observacao        *string
	Upload            *string
	Data              *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Cliente  *Cliente         `gorm:"foreignKey:ClienteUASG;references:UASG"`
	Produtos []EmpenhoProduto `gorm:"foreignKey:EmpenhoID"`
}

func (Empenho) TableName() string { return "empenhos" }

type EmpenhoProduto struct {
	ID            uint            `gorm:"primaryKey"`
	EmpenhoID     uint            `gorm:"index;not null"`
	ProdutoID     uint            `gorm:"index;not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (EmpenhoProduto) TableName() string { return "empenho_produtos" }
