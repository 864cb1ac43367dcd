package infra

// pdf.go — printable A4 empenho sheet using go-pdf/fpdf:
//   - Header with número and classificação
//   - Client block (órgão, UASG, CNPJ)
//   - Line-item table (product, quantity, unit value, total)
//   - Bold grand total and observation footer

import (
	"bytes"
	"fmt"

	"licitasis/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateEmpenhoPDF renders a printable sheet for an Empenho (with Cliente
// and Produtos preloaded) and returns the PDF bytes.
func GenerateEmpenhoPDF(e *model.Empenho) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "LicitaSis", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Empenho Nº %s", e.Numero), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Classificação: "+e.Classificacao, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Client block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Cliente", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if e.Cliente != nil {
		pdf.CellFormat(contentW, 5, e.Cliente.NomeOrgaos, "", 1, "L", false, 0, "")
		if e.Cliente.CNPJ != nil {
			pdf.CellFormat(contentW, 5, "CNPJ: "+*e.Cliente.CNPJ, "", 1, "L", false, 0, "")
		}
	}
	pdf.CellFormat(contentW, 5, "UASG: "+e.ClienteUASG, "", 1, "L", false, 0, "")
	if e.Pregao != nil && *e.Pregao != "" {
		pdf.CellFormat(contentW, 5, "Pregão: "+*e.Pregao, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit value
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Valor Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range e.Produtos {
		nome := fmt.Sprintf("Produto %d", item.ProdutoID)
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		if len(nome) > 40 {
			nome = nome[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Quantidade.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "R$ "+item.ValorUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "R$ "+item.ValorTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "VALOR TOTAL DO EMPENHO:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "R$ "+e.ValorTotalEmpenho.StringFixed(2), "T", 1, "R", false, 0, "")

	if e.Observacao != nil && *e.Observacao != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Observação: "+*e.Observacao, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: write: %w", err)
	}
	return &buf, nil
}
