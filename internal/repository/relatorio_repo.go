package repository

// relatorio_repo.go — the schema-adaptive sales report.
//
// Each fallback tier is a fully parameterized query whose only variable parts
// are fragments picked from the fixed whitelists in infra.Capabilities
// (column and table names the probe confirmed to exist). User input reaches
// the query exclusively through bind parameters.
//
// Tiers, in order:
//   1. full      — carrier join + line items + products
//   2. reduced   — line items + products, carrier fields as empty strings
//   3. vendas-só — sales+clients only, one synthesized pseudo-line per sale
// An execution error on a tier falls through to the next; only the terminal
// tier's failure is reported to the caller.

import (
	"context"
	"fmt"

	"licitasis/internal/dto"
	"licitasis/internal/infra"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RelatorioRepository interface {
	// VendasPorCliente returns the report rows for one client plus the tier
	// (1-3) that produced them.
	VendasPorCliente(ctx context.Context, uasg string) ([]dto.VendaClienteRow, int, error)
}

type relatorioRepo struct {
	db   *gorm.DB
	caps infra.Capabilities
}

func NewRelatorioRepository(db *gorm.DB, caps infra.Capabilities) RelatorioRepository {
	return &relatorioRepo{db: db, caps: caps}
}

func (r *relatorioRepo) VendasPorCliente(ctx context.Context, uasg string) ([]dto.VendaClienteRow, int, error) {
	type tier struct {
		n   int
		sql string
	}
	var tiers []tier
	if r.caps.TransportadoraTable != "" && r.caps.HasVendaProdutos {
		tiers = append(tiers, tier{1, r.tierFull()})
	}
	if r.caps.HasVendaProdutos {
		tiers = append(tiers, tier{2, r.tierReduced()})
	}
	tiers = append(tiers, tier{3, r.tierVendasOnly()})

	var lastErr error
	for _, t := range tiers {
		var rows []dto.VendaClienteRow
		err := r.db.WithContext(ctx).Raw(t.sql, uasg).Scan(&rows).Error
		if err == nil {
			return rows, t.n, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("tier", t.n).Str("uasg", uasg).
			Msg("report tier failed; falling back")
	}
	return nil, 0, fmt.Errorf("relatório de vendas do cliente %s: %w", uasg, lastErr)
}

// ── Capability-selected fragments ────────────────────────────────────────────

func (r *relatorioRepo) nfExpr() string {
	if r.caps.NFColumn == "" {
		return "''"
	}
	return "COALESCE(v." + r.caps.NFColumn + ", '')"
}

func (r *relatorioRepo) dataExpr() string {
	if r.caps.DataColumn == "created_at" {
		return "COALESCE(v.created_at, NOW())"
	}
	return "COALESCE(v." + r.caps.DataColumn + ", v.created_at)"
}

func (r *relatorioRepo) custoExpr() string {
	if r.caps.HasValorCusto {
		return "COALESCE(vp.valor_custo, 0)"
	}
	return "0"
}

func (r *relatorioRepo) codigoExpr() string {
	if r.caps.HasProdutoCodigo {
		return "COALESCE(p.codigo, '')"
	}
	return "''"
}

func (r *relatorioRepo) descricaoExpr() string {
	if r.caps.HasProdutoDescricao {
		return "COALESCE(p.descricao, '')"
	}
	return "''"
}

// ── Tier queries ─────────────────────────────────────────────────────────────

// Shared head of the SELECT list: the sale and client columns every tier has.
func (r *relatorioRepo) selectVendaCliente() string {
	return `
		v.id AS venda_id,
		` + r.nfExpr() + ` AS numero_nf,
		` + r.dataExpr() + ` AS data_venda,
		COALESCE(v.valor_total, 0) AS valor_total,
		COALESCE(v.status_pagamento, 'Pendente') AS status_pagamento,
		COALESCE(v.observacao, '') AS observacao,
		c.nome_orgaos AS cliente_nome,
		c.uasg AS cliente_uasg,
		COALESCE(c.cnpj, '') AS cliente_cnpj`
}

// Line-item projection shared by tiers 1 and 2, with derived profit. Percent
// is profit over line total ×100, zero when the line total is zero.
func (r *relatorioRepo) selectItens() string {
	custo := r.custoExpr()
	lucro := "(COALESCE(vp.valor_total, 0) - " + custo + " * COALESCE(vp.quantidade, 1))"
	return `
		COALESCE(vp.produto_id, 0) AS produto_id,
		COALESCE(vp.quantidade, 1) AS quantidade,
		COALESCE(vp.valor_unitario, 0) AS valor_unitario,
		COALESCE(vp.valor_total, 0) AS valor_produto,
		` + custo + ` AS valor_custo,
		COALESCE(p.nome, 'Produto não identificado') AS produto_nome,
		` + r.codigoExpr() + ` AS produto_codigo,
		` + r.descricaoExpr() + ` AS produto_descricao,
		` + lucro + ` AS lucro_produto,
		CASE WHEN COALESCE(vp.valor_total, 0) > 0
		     THEN ` + lucro + ` / vp.valor_total * 100
		     ELSE 0 END AS percentual_lucro`
}

func (r *relatorioRepo) tierFull() string {
	return `SELECT ` + r.selectVendaCliente() + `,
		COALESCE(t.nome, '') AS transportadora_nome,
		COALESCE(t.cnpj, '') AS transportadora_cnpj,
		COALESCE(t.telefone, '') AS transportadora_telefone,` +
		r.selectItens() + `
		FROM vendas v
		INNER JOIN clientes c ON v.cliente_uasg = c.uasg
		LEFT JOIN ` + r.caps.TransportadoraTable + ` t ON v.transportadora_id = t.id
		LEFT JOIN venda_produtos vp ON v.id = vp.venda_id
		LEFT JOIN produtos p ON vp.produto_id = p.id
		WHERE v.cliente_uasg = ?
		ORDER BY data_venda DESC, v.id DESC`
}

func (r *relatorioRepo) tierReduced() string {
	return `SELECT ` + r.selectVendaCliente() + `,
		'' AS transportadora_nome,
		'' AS transportadora_cnpj,
		'' AS transportadora_telefone,` +
		r.selectItens() + `
		FROM vendas v
		INNER JOIN clientes c ON v.cliente_uasg = c.uasg
		LEFT JOIN venda_produtos vp ON v.id = vp.venda_id
		LEFT JOIN produtos p ON vp.produto_id = p.id
		WHERE v.cliente_uasg = ?
		ORDER BY data_venda DESC, v.id DESC`
}

// Terminal tier: no line-item table at all. Each sale becomes one pseudo-line
// with quantity 1, unit value = sale total, profit = sale total, percent 100.
func (r *relatorioRepo) tierVendasOnly() string {
	return `SELECT ` + r.selectVendaCliente() + `,
		'' AS transportadora_nome,
		'' AS transportadora_cnpj,
		'' AS transportadora_telefone,
		0 AS produto_id,
		1 AS quantidade,
		COALESCE(v.valor_total, 0) AS valor_unitario,
		COALESCE(v.valor_total, 0) AS valor_produto,
		0 AS valor_custo,
		'Venda sem detalhamento de produto' AS produto_nome,
		'' AS produto_codigo,
		'' AS produto_descricao,
		COALESCE(v.valor_total, 0) AS lucro_produto,
		100 AS percentual_lucro
		FROM vendas v
		INNER JOIN clientes c ON v.cliente_uasg = c.uasg
		WHERE v.cliente_uasg = ?
		ORDER BY v.id DESC`
}
