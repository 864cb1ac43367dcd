package infra

// xlsx.go — spreadsheet export of empenhos using excelize.
// The generated workbook mirrors the columns of the on-screen listing so the
// finance team can keep working in their existing planilhas.

import (
	"bytes"
	"fmt"

	"licitasis/internal/model"

	"github.com/xuri/excelize/v2"
)

var empenhoExportHeaders = []string{
	"Número", "UASG", "Órgão", "Classificação", "Pregão", "Prioridade",
	"Valor Total", "Data", "Observação",
}

// ExportEmpenhosXLSX renders the given empenhos (with Cliente preloaded) into
// an in-memory XLSX workbook.
func ExportEmpenhosXLSX(empenhos []model.Empenho) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Empenhos"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#2D893E"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, h := range empenhoExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endCol, _ := excelize.CoordinatesToCellName(len(empenhoExportHeaders), 1)
	f.SetCellStyle(sheet, "A1", endCol, headerStyle)

	for row, e := range empenhos {
		orgao := ""
		if e.Cliente != nil {
			orgao = e.Cliente.NomeOrgaos
		}
		pregao := ""
		if e.Pregao != nil {
			pregao = *e.Pregao
		}
		data := ""
		if e.Data != nil {
			data = e.Data.Format("02/01/2006")
		}
		obs := ""
		if e.Observacao != nil {
			obs = *e.Observacao
		}
		valor, _ := e.ValorTotalEmpenho.Float64()

		values := []interface{}{
			e.Numero, e.ClienteUASG, orgao, e.Classificacao, pregao,
			e.Prioridade, valor, data, obs,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf, nil
}
