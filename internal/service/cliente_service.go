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

var ErrUASGDuplicada = errors.New("Já existe um cliente com esta UASG")

type ClienteService interface {
	Cadastrar(ctx context.Context, req dto.CadastrarClienteRequest) (*dto.ClienteResponse, error)
	BuscarPorUASG(ctx context.Context, uasg string) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Cadastrar(ctx context.Context, req dto.CadastrarClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByUASG(ctx, req.UASG); err == nil {
		return nil, ErrUASGDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Cliente{
		UASG:        req.UASG,
		NomeOrgaos:  req.NomeOrgaos,
		CNPJ:        req.CNPJ,
		Endereco:    req.Endereco,
		Telefone:    req.Telefone,
		Email:       req.Email,
		Observacoes: req.Observacoes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("cadastrar cliente: %w", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) BuscarPorUASG(ctx context.Context, uasg string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByUASG(ctx, uasg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}
