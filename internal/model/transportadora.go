package model

import "time"

// Transportadora é opcional em uma venda. Instalações antigas criaram a tabela
// no singular ("transportadora"); o relatório adaptativo descobre qual nome
// existe em tempo de inicialização. Este model mapeia o plural, criado em
// instalações novas.
type Transportadora struct {
	ID        uint    `gorm:"primaryKey"`
	Nome      string  `gorm:"not null"`
	CNPJ      *string `gorm:"column:cnpj"`
	Telefone  *string
	Endereco  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Transportadora) TableName() string { return "transportadoras" }
