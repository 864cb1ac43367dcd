package model

import "time"

// Cliente é um órgão comprador do governo, identificado pela UASG
// (Unidade Administrativa de Serviços Gerais). A UASG é a chave natural:
// imutável após o cadastro e referenciada por vendas e empenhos.
type Cliente struct {
	UASG        string  `gorm:"primaryKey;column:uasg"`
	NomeOrgaos  string  `gorm:"column:nome_orgaos;not null"`
	CNPJ        *string `gorm:"column:cnpj"`
	Endereco    *string
	Telefone    *string
	Email       *string
	Observacoes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Cliente) TableName() string { return "clientes" }
