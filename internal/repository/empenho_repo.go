package repository

import (
	"context"

	"licitasis/internal/dto"
	"licitasis/internal/model"

	"gorm.io/gorm"
)

type EmpenhoRepository interface {
	Create(ctx context.Context, e *model.Empenho) error
	FindByID(ctx context.Context, id uint) (*model.Empenho, error)
	FindByNumero(ctx context.Context, numero string) (*model.Empenho, error)
	List(ctx context.Context, filter dto.EmpenhoFilter) ([]model.Empenho, int64, error)
	ListAll(ctx context.Context) ([]model.Empenho, error)
	UpdateClassificacao(ctx context.Context, id uint, classificacao string) error
	CountByClassificacao(ctx context.Context) (map[string]int64, error)

	// Transactional helpers — callers own the tx
	FindByNumeroExcetoTx(tx *gorm.DB, numero string, excetoID uint) (*model.Empenho, error)
	UpdateTx(tx *gorm.DB, e *model.Empenho) error
	DeleteComProdutosTx(tx *gorm.DB, id uint) error
	VendaVinculadaTx(tx *gorm.DB, empenhoID uint) (bool, error)

	DB() *gorm.DB
}

type empenhoRepo struct{ db *gorm.DB }

func NewEmpenhoRepository(db *gorm.DB) EmpenhoRepository { return &empenhoRepo{db: db} }

func (r *empenhoRepo) DB() *gorm.DB { return r.db }

func (r *empenhoRepo) Create(ctx context.Context, e *model.Empenho) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empenhoRepo) FindByID(ctx context.Context, id uint) (*model.Empenho, error) {
	var e model.Empenho
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Produtos.Produto").
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empenhoRepo) FindByNumero(ctx context.Context, numero string) (*model.Empenho, error) {
	var e model.Empenho
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empenhoRepo) List(ctx context.Context, filter dto.EmpenhoFilter) ([]model.Empenho, int64, error) {
	var empenhos []model.Empenho
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Empenho{})
	if filter.Classificacao != "" && filter.Classificacao != "all" {
		q = q.Where("classificacao = ?", filter.Classificacao)
	}
	if filter.UASG != "" {
		q = q.Where("cliente_uasg = ?", filter.UASG)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("numero ILIKE ? OR pregao ILIKE ?", term, term)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&empenhos).Error
	return empenhos, total, err
}

func (r *empenhoRepo) ListAll(ctx context.Context) ([]model.Empenho, error) {
	var empenhos []model.Empenho
	err := r.db.WithContext(ctx).Preload("Cliente").
		Order("created_at DESC").Find(&empenhos).Error
	return empenhos, err
}

func (r *empenhoRepo) UpdateClassificacao(ctx context.Context, id uint, classificacao string) error {
	return r.db.WithContext(ctx).Model(&model.Empenho{}).
		Where("id = ?", id).Update("classificacao", classificacao).Error
}

func (r *empenhoRepo) CountByClassificacao(ctx context.Context) (map[string]int64, error) {
	type bucket struct {
		Classificacao string
		Total         int64
	}
	var buckets []bucket
	err := r.db.WithContext(ctx).Model(&model.Empenho{}).
		Select("COALESCE(classificacao, 'Pendente') AS classificacao, COUNT(*) AS total").
		Group("COALESCE(classificacao, 'Pendente')").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		result[b.Classificacao] = b.Total
	}
	return result, nil
}

func (r *empenhoRepo) FindByNumeroExcetoTx(tx *gorm.DB, numero string, excetoID uint) (*model.Empenho, error) {
	var e model.Empenho
	err := tx.Where("numero = ? AND id <> ?", numero, excetoID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empenhoRepo) UpdateTx(tx *gorm.DB, e *model.Empenho) error {
	return tx.Save(e).Error
}

// DeleteComProdutosTx removes the empenho's line items and then the empenho
// itself. Run inside a transaction: a failure after the line items are gone
// must roll everything back — no orphans either way.
func (r *empenhoRepo) DeleteComProdutosTx(tx *gorm.DB, id uint) error {
	if err := tx.Where("empenho_id = ?", id).Delete(&model.EmpenhoProduto{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&model.Empenho{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *empenhoRepo) VendaVinculadaTx(tx *gorm.DB, empenhoID uint) (bool, error) {
	var n int64
	err := tx.Model(&model.Venda{}).Where("empenho_id = ?", empenhoID).Count(&n).Error
	return n > 0, err
}
