package model

import "time"

// Níveis de permissão do sistema. Administrador tem acesso total; os demais
// níveis são resolvidos pela matriz módulo×ação (ver middleware.HasPermission).
const (
	PermAdministrador = "Administrador"
	PermNivel1        = "Usuario_Nivel_1"
	PermNivel2        = "Usuario_Nivel_2"
	PermNivel3        = "Usuario_Nivel_3"
	PermInvestidor    = "Investidor"
)

type Usuario struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	SenhaHash string `gorm:"column:senha_hash;not null"`
	Permissao string `gorm:"not null;default:'Usuario_Nivel_1'"`
	Ativo     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }
