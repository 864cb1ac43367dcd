package service

import (
	"context"
	"errors"
	"fmt"

	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrClienteNaoEncontrado = errors.New("Cliente não encontrado")

type RelatorioService interface {
	// VendasPorCliente builds the per-client sales report. The envelope is
	// always well-formed: when the client does not exist or every query tier
	// failed, Vendas is empty and Erro carries the message — callers render
	// the same shape either way.
	VendasPorCliente(ctx context.Context, uasg string) (*dto.VendaClienteReport, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type relatorioService struct {
	relatorioRepo repository.RelatorioRepository
	clienteRepo   repository.ClienteRepository
	vendaRepo     repository.VendaRepository
	empenhoRepo   repository.EmpenhoRepository
	estoque       EstoqueService
}

func NewRelatorioService(
	relatorioRepo repository.RelatorioRepository,
	clienteRepo repository.ClienteRepository,
	vendaRepo repository.VendaRepository,
	empenhoRepo repository.EmpenhoRepository,
	estoque EstoqueService,
) RelatorioService {
	return &relatorioService{
		relatorioRepo: relatorioRepo,
		clienteRepo:   clienteRepo,
		vendaRepo:     vendaRepo,
		empenhoRepo:   empenhoRepo,
		estoque:       estoque,
	}
}

func vazio(erro string) *dto.VendaClienteReport {
	return &dto.VendaClienteReport{
		Vendas: []dto.VendaClienteRow{},
		Erro:   erro,
	}
}

func (s *relatorioService) VendasPorCliente(ctx context.Context, uasg string) (*dto.VendaClienteReport, error) {
	cliente, err := s.clienteRepo.FindByUASG(ctx, uasg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vazio(ErrClienteNaoEncontrado.Error()), nil
		}
		return nil, fmt.Errorf("cliente %s: %w", uasg, err)
	}

	rows, tier, err := s.relatorioRepo.VendasPorCliente(ctx, uasg)
	if err != nil {
		// Terminal tier failed. The envelope stays valid and empty so the
		// caller never renders a broken page; the real error goes to the log.
		log.Error().Err(err).Str("uasg", uasg).Msg("relatório de vendas indisponível")
		rel := vazio("Não foi possível gerar o relatório de vendas")
		rel.Cliente = clienteToResponse(cliente)
		return rel, nil
	}
	if tier > 1 {
		log.Info().Int("tier", tier).Str("uasg", uasg).
			Msg("relatório gerado em modo reduzido")
	}
	if rows == nil {
		rows = []dto.VendaClienteRow{}
	}

	return &dto.VendaClienteReport{
		Cliente: clienteToResponse(cliente),
		Vendas:  rows,
		Resumo:  resumirVendas(rows),
	}, nil
}

// resumirVendas aggregates the report in a single pass. Every result row
// counts: a sale with N line items contributes N to the count and N times its
// valor_total to the sum, exactly like the on-screen listing that the report
// mirrors. A status outside the canonical pair counts as pending.
func resumirVendas(rows []dto.VendaClienteRow) dto.VendaClienteResumo {
	resumo := dto.VendaClienteResumo{}
	for _, row := range rows {
		resumo.TotalVendas++
		resumo.ValorTotalVendas = resumo.ValorTotalVendas.Add(row.ValorTotal)
		resumo.LucroTotal = resumo.LucroTotal.Add(row.LucroProduto)
		if row.StatusPagamento == model.StatusRecebido {
			resumo.VendasRecebidas++
		} else {
			resumo.VendasPendentes++
		}
	}
	return resumo
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		UASG:        c.UASG,
		NomeOrgaos:  c.NomeOrgaos,
		CNPJ:        c.CNPJ,
		Endereco:    c.Endereco,
		Telefone:    c.Telefone,
		Email:       c.Email,
		Observacoes: c.Observacoes,
	}
}

func (s *relatorioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalClientes, err := s.clienteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", err)
	}
	totalVendas, err := s.vendaRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: vendas: %w", err)
	}
	valorTotal, err := s.vendaRepo.SumValorTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: valor total: %w", err)
	}
	recebidas, err := s.vendaRepo.CountByStatus(ctx, model.StatusRecebido)
	if err != nil {
		return nil, fmt.Errorf("dashboard: recebidas: %w", err)
	}
	porClassificacao, err := s.empenhoRepo.CountByClassificacao(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: empenhos: %w", err)
	}
	estoque, err := s.estoque.Resumo(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalClientes:     totalClientes,
		TotalVendas:       totalVendas,
		ValorTotalVendas:  valorTotal,
		VendasRecebidas:   recebidas,
		VendasPendentes:   totalVendas - recebidas,
		EmpenhosPorStatus: porClassificacao,
		Estoque:           estoque,
	}, nil
}
