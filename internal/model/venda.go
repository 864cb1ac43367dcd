package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de pagamento de uma venda. O par canônico é Pendente/Recebido, mas a
// reversão de um recebimento grava o literal legado "Não Recebido" — relatórios
// existentes filtram por essa string exata, então ela é preservada aqui e em
// nenhum outro lugar. Qualquer valor fora do par canônico conta como pendente
// nas agregações.
const (
	StatusPendente    = "Pendente"
	StatusRecebido    = "Recebido"
	StatusNaoRecebido = "Não Recebido"
)

// Venda é uma venda registrada para um cliente (por UASG). O nome da coluna de
// nota fiscal varia entre instalações (numero_nf, nf, nota_fiscal...); o model
// mapeia numero_nf, que é o nome criado em instalações novas — o relatório
// adaptativo resolve os demais via sondagem de schema.
type Venda struct {
	ID               uint    `gorm:"primaryKey"`
	ClienteUASG      string  `gorm:"column:cliente_uasg;index;not null"`
	EmpenhoID        *uint   `gorm:"index"`
	NumeroNF         *string `gorm:"column:numero_nf"`
	ValorTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StatusPagamento  string          `gorm:"not null;default:'Pendente'"`
	Observacao       *string
	TransportadoraID *uint      `gorm:"index"`
	DataVenda        *time.Time `gorm:"column:data_venda"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente *Cliente       `gorm:"foreignKey:ClienteUASG;references:UASG"`
	Itens   []VendaProduto `gorm:"foreignKey:VendaID"`
}

func (Venda) TableName() string { return "vendas" }

// VendaProduto é uma linha da venda e a saída de estoque do produto.
// ValorCusto é opcional — instalações antigas não têm a coluna.
type VendaProduto struct {
	ID            uint             `gorm:"primaryKey"`
	VendaID       uint             `gorm:"index;not null"`
	ProdutoID     uint             `gorm:"index;not null"`
	Quantidade    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ValorUnitario decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	ValorTotal    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	ValorCusto    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (VendaProduto) TableName() string { return "venda_produtos" }
