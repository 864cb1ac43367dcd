package service

import (
	"context"
	"errors"
	"fmt"

	"licitasis/internal/dto"
	"licitasis/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProdutoNaoEncontrado = errors.New("Produto não encontrado")

var tres = decimal.NewFromInt(3)

type EstoqueService interface {
	// Relatorio computes the derived stock of every product plus the batch
	// aggregates, in one pass. Nothing is persisted.
	Relatorio(ctx context.Context) (*dto.EstoqueReportResponse, error)
	ProdutoPorID(ctx context.Context, id uint) (*dto.EstoqueProdutoResponse, error)
	Resumo(ctx context.Context) (dto.EstoqueResumo, error)
}

type estoqueService struct {
	produtoRepo repository.ProdutoRepository
}

func NewEstoqueService(produtoRepo repository.ProdutoRepository) EstoqueService {
	return &estoqueService{produtoRepo: produtoRepo}
}

// classificarSituacao buckets a product's derived stock. Evaluated in order:
// zero-or-below wins over critico, critico over alto. The alto and critico
// buckets only apply when a minimum is configured (estoque_minimo > 0);
// without one, any positive stock is normal.
func classificarSituacao(atual, minimo decimal.Decimal) string {
	switch {
	case atual.LessThanOrEqual(decimal.Zero):
		return dto.SituacaoSemEstoque
	case minimo.GreaterThan(decimal.Zero) && atual.LessThanOrEqual(minimo):
		return dto.SituacaoCritico
	case minimo.GreaterThan(decimal.Zero) && atual.GreaterThan(minimo.Mul(tres)):
		return dto.SituacaoAlto
	default:
		return dto.SituacaoNormal
	}
}

func toEstoqueResponse(row dto.EstoqueProdutoRow) dto.EstoqueProdutoResponse {
	return dto.EstoqueProdutoResponse{
		EstoqueProdutoRow: row,
		ValorEstoque:      row.EstoqueAtual.Mul(row.PrecoUnitario),
		Situacao:          classificarSituacao(row.EstoqueAtual, row.EstoqueMinimo),
	}
}

func (s *estoqueService) Relatorio(ctx context.Context) (*dto.EstoqueReportResponse, error) {
	rows, err := s.produtoRepo.EstoqueDerivado(ctx)
	if err != nil {
		return nil, fmt.Errorf("relatório de estoque: %w", err)
	}

	produtos := make([]dto.EstoqueProdutoResponse, 0, len(rows))
	resumo := dto.EstoqueResumo{
		TotalProdutos: len(rows),
		PorSituacao: map[string]int{
			dto.SituacaoSemEstoque: 0,
			dto.SituacaoCritico:    0,
			dto.SituacaoAlto:       0,
			dto.SituacaoNormal:     0,
		},
	}
	for _, row := range rows {
		p := toEstoqueResponse(row)
		produtos = append(produtos, p)

		resumo.QuantidadeTotal = resumo.QuantidadeTotal.Add(row.EstoqueAtual)
		resumo.ValorTotal = resumo.ValorTotal.Add(p.ValorEstoque)
		resumo.PorSituacao[p.Situacao]++
		if p.Situacao == dto.SituacaoCritico {
			resumo.ProdutosCriticos++
		}
	}

	return &dto.EstoqueReportResponse{Produtos: produtos, Resumo: resumo}, nil
}

func (s *estoqueService) ProdutoPorID(ctx context.Context, id uint) (*dto.EstoqueProdutoResponse, error) {
	row, err := s.produtoRepo.EstoqueDerivadoPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, fmt.Errorf("estoque do produto %d: %w", id, err)
	}
	resp := toEstoqueResponse(*row)
	return &resp, nil
}

func (s *estoqueService) Resumo(ctx context.Context) (dto.EstoqueResumo, error) {
	rel, err := s.Relatorio(ctx)
	if err != nil {
		return dto.EstoqueResumo{}, err
	}
	return rel.Resumo, nil
}
