package repository

import (
	"testing"

	"licitasis/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestFragmentosSelecionadosPorCapacidade(t *testing.T) {
	completo := &relatorioRepo{caps: infra.Capabilities{
		TransportadoraTable: "transportadoras",
		HasVendaProdutos:    true,
		HasValorCusto:       true,
		HasProdutoCodigo:    true,
		HasProdutoDescricao: true,
		NFColumn:            "nota_fiscal",
		DataColumn:          "data_venda",
	}}
	assert.Equal(t, "COALESCE(v.nota_fiscal, '')", completo.nfExpr())
	assert.Equal(t, "COALESCE(v.data_venda, v.created_at)", completo.dataExpr())
	assert.Equal(t, "COALESCE(vp.valor_custo, 0)", completo.custoExpr())

	minimo := &relatorioRepo{caps: infra.Capabilities{DataColumn: "created_at"}}
	assert.Equal(t, "''", minimo.nfExpr())
	assert.Equal(t, "COALESCE(v.created_at, NOW())", minimo.dataExpr())
	assert.Equal(t, "0", minimo.custoExpr())
	assert.Equal(t, "''", minimo.codigoExpr())
	assert.Equal(t, "''", minimo.descricaoExpr())
}

func TestTierCompletoUsaTabelaSondada(t *testing.T) {
	r := &relatorioRepo{caps: infra.Capabilities{
		TransportadoraTable: "transportadora",
		HasVendaProdutos:    true,
		NFColumn:            "numero_nf",
		DataColumn:          "data_venda",
	}}
	sql := r.tierFull()
	assert.Contains(t, sql, "LEFT JOIN transportadora t")
	assert.Contains(t, sql, "LEFT JOIN venda_produtos vp")
	assert.Contains(t, sql, "WHERE v.cliente_uasg = ?", "entrada do usuário só via bind")
}

func TestTierReduzidoSemTransportadora(t *testing.T) {
	r := &relatorioRepo{caps: infra.Capabilities{
		HasVendaProdutos: true,
		DataColumn:       "created_at",
	}}
	sql := r.tierReduced()
	assert.NotContains(t, sql, "transportadora t")
	assert.Contains(t, sql, "'' AS transportadora_nome")
	assert.Contains(t, sql, "LEFT JOIN venda_produtos vp")
}

func TestTierVendasSoSintetizaPseudoLinha(t *testing.T) {
	r := &relatorioRepo{caps: infra.Capabilities{DataColumn: "created_at"}}
	sql := r.tierVendasOnly()
	assert.NotContains(t, sql, "venda_produtos")
	assert.Contains(t, sql, "1 AS quantidade")
	assert.Contains(t, sql, "'Venda sem detalhamento de produto' AS produto_nome")
	assert.Contains(t, sql, "100 AS percentual_lucro")
	// Pseudo-linha espelha o total da venda em valor e lucro.
	assert.Contains(t, sql, "COALESCE(v.valor_total, 0) AS valor_unitario")
	assert.Contains(t, sql, "COALESCE(v.valor_total, 0) AS valor_produto")
	assert.Contains(t, sql, "COALESCE(v.valor_total, 0) AS lucro_produto")
}

func TestEstoqueQueryOmiteJoinsAusentes(t *testing.T) {
	com := &produtoRepo{caps: infra.Capabilities{HasProdutoCompra: true, HasVendaProdutos: true}}
	sql := com.estoqueQuery("")
	assert.Contains(t, sql, "FROM produto_compra")
	assert.Contains(t, sql, "FROM venda_produtos")

	sem := &produtoRepo{caps: infra.Capabilities{}}
	sql = sem.estoqueQuery("")
	assert.NotContains(t, sql, "produto_compra")
	assert.NotContains(t, sql, "venda_produtos")
	assert.Contains(t, sql, "(COALESCE(p.estoque_inicial, 0) + 0 - 0) AS estoque_atual")
}
