package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog registra toda mutação sensível: snapshot antigo, snapshot novo,
// autor e metadados da requisição. Os registros são imutáveis — nunca são
// editados nem removidos. A falha ao gravar auditoria não desfaz a mutação
// (best-effort), mas é sempre logada no servidor.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    *uint     `gorm:"index"`
	UserName  string
	Action    string `gorm:"not null"` // INSERT | UPDATE | DELETE
	Tabela    string `gorm:"column:table_name;not null;index"`
	RecordID  uint   `gorm:"index"`
	// Details e OldData são snapshots JSON da linha depois/antes da mutação.
	Details   string `gorm:"type:jsonb"`
	OldData   *string `gorm:"type:jsonb"`
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

func (AuditLog) TableName() string { return "audit_log" }
