package service

import (
	"context"
	"errors"
	"fmt"

	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"gorm.io/gorm"
)

type ProdutoService interface {
	Cadastrar(ctx context.Context, req dto.CadastrarProdutoRequest) (*dto.ProdutoResponse, error)
	BuscarPorID(ctx context.Context, id uint) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Cadastrar(ctx context.Context, req dto.CadastrarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:           req.Nome,
		Codigo:         req.Codigo,
		Descricao:      req.Descricao,
		PrecoUnitario:  req.PrecoUnitario,
		EstoqueInicial: req.EstoqueInicial,
		EstoqueMinimo:  req.EstoqueMinimo,
		Fornecedor:     req.Fornecedor,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("cadastrar produto: %w", err)
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) BuscarPorID(ctx context.Context, id uint) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		items = append(items, *produtoToResponse(&produtos[i]))
	}
	return items, nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:             p.ID,
		Nome:           p.Nome,
		Codigo:         p.Codigo,
		Descricao:      p.Descricao,
		PrecoUnitario:  p.PrecoUnitario,
		EstoqueInicial: p.EstoqueInicial,
		EstoqueMinimo:  p.EstoqueMinimo,
		Fornecedor:     p.Fornecedor,
	}
}
