package repository

import (
	"context"

	"licitasis/internal/dto"
	"licitasis/internal/infra"
	"licitasis/internal/model"

	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uint) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	Count(ctx context.Context) (int64, error)

	// EstoqueDerivado computes, in a single query, the derived stock of every
	// product: estoque_inicial + entradas − saídas. Results are never written
	// back. A missing line-item table contributes zero, not an error.
	EstoqueDerivado(ctx context.Context) ([]dto.EstoqueProdutoRow, error)
	EstoqueDerivadoPorID(ctx context.Context, id uint) (*dto.EstoqueProdutoRow, error)
}

type produtoRepo struct {
	db   *gorm.DB
	caps infra.Capabilities
}

func NewProdutoRepository(db *gorm.DB, caps infra.Capabilities) ProdutoRepository {
	return &produtoRepo{db: db, caps: caps}
}

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uint) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).Count(&n).Error
	return n, err
}

// estoqueQuery assembles the derived-stock query. The entradas/saídas joins
// are only emitted when the source table exists in this install; otherwise
// the term is the literal 0 (capability probe, see infra/schema.go).
func (r *produtoRepo) estoqueQuery(where string) string {
	entradas := "0"
	entradasJoin := ""
	if r.caps.HasProdutoCompra {
		entradas = "COALESCE(entradas.total_entradas, 0)"
		entradasJoin = `
		LEFT JOIN (
			SELECT produto_id, SUM(quantidade) AS total_entradas
			FROM produto_compra
			GROUP BY produto_id
		) entradas ON p.id = entradas.produto_id`
	}

	saidas := "0"
	saidasJoin := ""
	if r.caps.HasVendaProdutos {
		saidas = "COALESCE(saidas.total_saidas, 0)"
		saidasJoin = `
		LEFT JOIN (
			SELECT produto_id, SUM(quantidade) AS total_saidas
			FROM venda_produtos
			GROUP BY produto_id
		) saidas ON p.id = saidas.produto_id`
	}

	return `SELECT
		p.id,
		p.nome,
		COALESCE(p.preco_unitario, 0) AS preco_unitario,
		COALESCE(p.estoque_inicial, 0) AS estoque_inicial,
		COALESCE(p.estoque_minimo, 0) AS estoque_minimo,
		` + entradas + ` AS total_entradas,
		` + saidas + ` AS total_saidas,
		(COALESCE(p.estoque_inicial, 0) + ` + entradas + ` - ` + saidas + `) AS estoque_atual
		FROM produtos p` + entradasJoin + saidasJoin + where + `
		ORDER BY p.nome ASC`
}

func (r *produtoRepo) EstoqueDerivado(ctx context.Context) ([]dto.EstoqueProdutoRow, error) {
	var rows []dto.EstoqueProdutoRow
	err := r.db.WithContext(ctx).Raw(r.estoqueQuery("")).Scan(&rows).Error
	return rows, err
}

func (r *produtoRepo) EstoqueDerivadoPorID(ctx context.Context, id uint) (*dto.EstoqueProdutoRow, error) {
	var row dto.EstoqueProdutoRow
	res := r.db.WithContext(ctx).Raw(r.estoqueQuery(`
		WHERE p.id = ?`), id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
