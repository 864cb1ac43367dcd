package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do catálogo. O estoque atual NUNCA é armazenado:
// deriva-se de EstoqueInicial + entradas (produto_compra) − saídas
// (venda_produtos) a cada leitura. Codigo e Descricao são opcionais porque
// instalações antigas não possuem essas colunas.
type Produto struct {
	ID             uint            `gorm:"primaryKey"`
	Nome           string          `gorm:"index;not null"`
	Codigo         *string         `gorm:"index"`
	Descricao      *string
	PrecoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EstoqueInicial decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// EstoqueMinimo zero significa "sem limite configurado".
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Fornecedor    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Produto) TableName() string { return "produtos" }

// ProdutoCompra é uma linha de compra: a entrada de estoque de um produto.
type ProdutoCompra struct {
	ID         uint            `gorm:"primaryKey"`
	ProdutoID  uint            `gorm:"index;not null"`
	Quantidade decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ProdutoCompra) TableName() string { return "produto_compra" }
