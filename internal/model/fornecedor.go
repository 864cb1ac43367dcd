package model

import "time"

type Fornecedor struct {
	ID          uint    `gorm:"primaryKey"`
	Nome        string  `gorm:"index;not null"`
	CNPJ        *string `gorm:"column:cnpj;uniqueIndex"`
	Telefone    *string
	Email       *string
	Endereco    *string
	Observacoes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Fornecedor) TableName() string { return "fornecedores" }
