package repository

import (
	"context"

	"licitasis/internal/dto"
	"licitasis/internal/infra"
	"licitasis/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Venda, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumValorTotal(ctx context.Context) (decimal.Decimal, error)

	// ListRecebidas is the contas-recebidas listing: paginated vendas with
	// status "Recebido", optionally filtered by NF / client name / UASG.
	ListRecebidas(ctx context.Context, filter dto.ContaRecebidaFilter) ([]dto.ContaRecebidaItem, int64, error)

	// Transactional helpers — callers own the tx
	FindByIDTx(tx *gorm.DB, id uint) (*model.Venda, error)
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type vendaRepo struct {
	db   *gorm.DB
	caps infra.Capabilities
}

func NewVendaRepository(db *gorm.DB, caps infra.Capabilities) VendaRepository {
	return &vendaRepo{db: db, caps: caps}
}

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) FindByID(ctx context.Context, id uint) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Itens").First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Venda, error) {
	var v model.Venda
	err := tx.First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&model.Venda{}).Where("id = ?", id).
		Update("status_pagamento", status).Error
}

func (r *vendaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).Count(&n).Error
	return n, err
}

func (r *vendaRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("status_pagamento = ?", status).Count(&n).Error
	return n, err
}

func (r *vendaRepo) SumValorTotal(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("COALESCE(SUM(valor_total), 0)").Scan(&sum).Error
	return sum, err
}

func (r *vendaRepo) ListRecebidas(ctx context.Context, filter dto.ContaRecebidaFilter) ([]dto.ContaRecebidaItem, int64, error) {
	nf := "''"
	if r.caps.NFColumn != "" {
		nf = "COALESCE(v." + r.caps.NFColumn + ", '')"
	}

	base := r.db.WithContext(ctx).Table("vendas v").
		Joins("LEFT JOIN clientes c ON v.cliente_uasg = c.uasg").
		Where("v.status_pagamento = ?", model.StatusRecebido)

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		if r.caps.NFColumn != "" {
			base = base.Where(
				"v."+r.caps.NFColumn+" ILIKE ? OR c.nome_orgaos ILIKE ? OR v.cliente_uasg ILIKE ?",
				term, term, term)
		} else {
			base = base.Where("c.nome_orgaos ILIKE ? OR v.cliente_uasg ILIKE ?", term, term)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var rows []dto.ContaRecebidaItem
	err := base.Select(`
		v.id AS venda_id,
		` + nf + ` AS numero_nf,
		v.cliente_uasg AS cliente_uasg,
		COALESCE(c.nome_orgaos, '') AS cliente_nome,
		COALESCE(v.valor_total, 0) AS valor_total,
		v.status_pagamento AS status_pagamento`).
		Order("v.id DESC").
		Offset(offset).Limit(filter.Limit).
		Scan(&rows).Error
	return rows, total, err
}
