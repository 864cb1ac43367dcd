package infra

// schema.go — one-time startup probe of the optional parts of the schema.
//
// Installations of this system have drifted over the years: some carry a
// valor_custo column on venda_produtos, some pluralize the carrier table, the
// invoice-number column on vendas exists under four different names. Instead
// of probing metadata on every request, the probe runs once at startup and
// produces an immutable Capabilities value injected into the repositories.
// A probe failure is never fatal: the affected feature is treated as absent
// and the queries degrade accordingly.

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Capabilities describes which optional tables/columns exist in this install.
// The zero value is the conservative reading: everything optional is absent.
type Capabilities struct {
	// TransportadoraTable is "transportadoras", "transportadora", or "" when
	// neither exists.
	TransportadoraTable string
	HasVendaProdutos    bool
	HasProdutoCompra    bool
	HasValorCusto       bool
	HasProdutoCodigo    bool
	HasProdutoDescricao bool
	// NFColumn is the discovered invoice-number column on vendas, "" if none.
	NFColumn string
	// DataColumn is the discovered sale-date column, always non-empty.
	DataColumn string
}

// Candidate names are fixed whitelists. Discovered names are only ever one of
// these constants, so interpolating them into SQL text is safe.
var (
	transportadoraTables = []string{"transportadoras", "transportadora"}
	nfColumns            = []string{"numero_nf", "nf", "nota_fiscal", "numero_nota_fiscal"}
	dataColumns          = []string{"data_venda", "data", "created_at"}
)

// ProbeCapabilities inspects information_schema and returns the capability set
// for this database. It never returns an error: whatever cannot be confirmed
// to exist is reported absent.
func ProbeCapabilities(db *gorm.DB) Capabilities {
	caps := Capabilities{DataColumn: "created_at"}

	for _, t := range transportadoraTables {
		if tableExists(db, t) {
			caps.TransportadoraTable = t
			break
		}
	}

	caps.HasVendaProdutos = tableExists(db, "venda_produtos")
	caps.HasProdutoCompra = tableExists(db, "produto_compra")

	if caps.HasVendaProdutos {
		caps.HasValorCusto = columnExists(db, "venda_produtos", "valor_custo")
	}
	caps.HasProdutoCodigo = columnExists(db, "produtos", "codigo")
	caps.HasProdutoDescricao = columnExists(db, "produtos", "descricao")

	for _, c := range nfColumns {
		if columnExists(db, "vendas", c) {
			caps.NFColumn = c
			break
		}
	}
	for _, c := range dataColumns {
		if columnExists(db, "vendas", c) {
			caps.DataColumn = c
			break
		}
	}

	log.Info().
		Str("transportadora_table", caps.TransportadoraTable).
		Bool("venda_produtos", caps.HasVendaProdutos).
		Bool("produto_compra", caps.HasProdutoCompra).
		Bool("valor_custo", caps.HasValorCusto).
		Str("nf_column", caps.NFColumn).
		Str("data_column", caps.DataColumn).
		Msg("schema capabilities probed")

	return caps
}

func tableExists(db *gorm.DB, table string) bool {
	var n int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name = ?`, table,
	).Scan(&n).Error
	if err != nil {
		log.Warn().Err(err).Str("table", table).Msg("schema probe failed; assuming absent")
		return false
	}
	return n > 0
}

func columnExists(db *gorm.DB, table, column string) bool {
	var n int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`,
		table, column,
	).Scan(&n).Error
	if err != nil {
		log.Warn().Err(err).Str("table", table).Str("column", column).
			Msg("schema probe failed; assuming absent")
		return false
	}
	return n > 0
}
