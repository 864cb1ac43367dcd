package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"licitasis/internal/dto"
	"licitasis/internal/infra"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmpenhoNaoEncontrado  = errors.New("Empenho não encontrado")
	ErrClassificacaoInvalida = errors.New("Classificação inválida")
	ErrNumeroDuplicado       = errors.New("Já existe um empenho com este número")
	ErrEmpenhoConvertido     = errors.New("Empenho já convertido em venda não pode ser excluído")
)

type EmpenhoService interface {
	Cadastrar(ctx context.Context, actor Actor, req dto.CadastrarEmpenhoRequest) (*dto.EmpenhoResponse, error)
	BuscarPorID(ctx context.Context, id uint) (*dto.EmpenhoResponse, error)
	Listar(ctx context.Context, filter dto.EmpenhoFilter) (*dto.EmpenhoListResponse, error)
	AtualizarClassificacao(ctx context.Context, actor Actor, id uint, classificacao string) error
	Atualizar(ctx context.Context, actor Actor, id uint, req dto.AtualizarEmpenhoRequest) (*dto.EmpenhoResponse, error)
	Excluir(ctx context.Context, actor Actor, id uint) error
	ExportarXLSX(ctx context.Context) (*bytes.Buffer, error)
	GerarPDF(ctx context.Context, id uint) (*bytes.Buffer, error)
}

type empenhoService struct {
	repo        repository.EmpenhoRepository
	clienteRepo repository.ClienteRepository
	auditRepo   repository.AuditRepository
}

func NewEmpenhoService(
	repo repository.EmpenhoRepository,
	clienteRepo repository.ClienteRepository,
	auditRepo repository.AuditRepository,
) EmpenhoService {
	return &empenhoService{repo: repo, clienteRepo: clienteRepo, auditRepo: auditRepo}
}

func parseData(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}
	return &t, nil
}

func (s *empenhoService) Cadastrar(ctx context.Context, actor Actor, req dto.CadastrarEmpenhoRequest) (*dto.EmpenhoResponse, error) {
	if _, err := s.clienteRepo.FindByUASG(ctx, req.ClienteUASG); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}
	if _, err := s.repo.FindByNumero(ctx, req.Numero); err == nil {
		return nil, ErrNumeroDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	classificacao := req.Classificacao
	if classificacao == "" {
		classificacao = model.ClassificacaoPendente
	}
	if !model.ClassificacaoValida(classificacao) {
		return nil, ErrClassificacaoInvalida
	}
	prioridade := req.Prioridade
	if prioridade == "" {
		prioridade = "Normal"
	}
	data, err := parseData(req.Data)
	if err != nil {
		return nil, err
	}

	e := &model.Empenho{
		Numero:            req.Numero,
		ClienteUASG:       req.ClienteUASG,
		Classificacao:     classificacao,
		Pregao:            req.Pregao,
		Item:              req.Item,
		Prioridade:        prioridade,
		ValorTotalEmpenho: req.ValorTotalEmpenho,
		Observacao:        req.Observacao,
		Data:              data,
	}
	for _, item := range req.Produtos {
		e.Produtos = append(e.Produtos, model.EmpenhoProduto{
			ProdutoID:     item.ProdutoID,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    item.Quantidade.Mul(item.ValorUnitario),
		})
	}
	// When no explicit total was given, derive it from the line items.
	if e.ValorTotalEmpenho.IsZero() && len(e.Produtos) > 0 {
		total := decimal.Zero
		for _, p := range e.Produtos {
			total = total.Add(p.ValorTotal)
		}
		e.ValorTotalEmpenho = total
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("cadastrar empenho: %w", err)
	}

	s.audit(ctx, actor, "INSERT", e.ID, map[string]any{
		"numero": e.Numero, "cliente_uasg": e.ClienteUASG,
		"classificacao": e.Classificacao,
	}, nil)

	return empenhoToResponse(e), nil
}

func (s *empenhoService) BuscarPorID(ctx context.Context, id uint) (*dto.EmpenhoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpenhoNaoEncontrado
		}
		return nil, err
	}
	return empenhoToResponse(e), nil
}

func (s *empenhoService) Listar(ctx context.Context, filter dto.EmpenhoFilter) (*dto.EmpenhoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	empenhos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar empenhos: %w", err)
	}
	items := make([]dto.EmpenhoResponse, 0, len(empenhos))
	for i := range empenhos {
		items = append(items, *empenhoToResponse(&empenhos[i]))
	}
	return &dto.EmpenhoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// AtualizarClassificacao changes only the classification. Values outside the
// fixed set are rejected before any write — the row is left untouched.
func (s *empenhoService) AtualizarClassificacao(ctx context.Context, actor Actor, id uint, classificacao string) error {
	if !model.ClassificacaoValida(classificacao) {
		return ErrClassificacaoInvalida
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmpenhoNaoEncontrado
		}
		return err
	}
	if err := s.repo.UpdateClassificacao(ctx, id, classificacao); err != nil {
		return fmt.Errorf("atualizar classificação do empenho %d: %w", id, err)
	}

	s.audit(ctx, actor, "UPDATE", id,
		map[string]any{"classificacao": classificacao},
		map[string]any{"classificacao": e.Classificacao})
	return nil
}

func (s *empenhoService) Atualizar(ctx context.Context, actor Actor, id uint, req dto.AtualizarEmpenhoRequest) (*dto.EmpenhoResponse, error) {
	if !model.ClassificacaoValida(req.Classificacao) {
		return nil, ErrClassificacaoInvalida
	}
	data, err := parseData(req.Data)
	if err != nil {
		return nil, err
	}

	var atualizado *model.Empenho
	var anterior model.Empenho
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		e, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmpenhoNaoEncontrado
			}
			return err
		}
		anterior = *e

		if _, err := s.repo.FindByNumeroExcetoTx(tx, req.Numero, id); err == nil {
			return ErrNumeroDuplicado
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		e.Numero = req.Numero
		e.Classificacao = req.Classificacao
		e.Pregao = req.Pregao
		e.Item = req.Item
		if req.Prioridade != "" {
			e.Prioridade = req.Prioridade
		}
		e.ValorTotalEmpenho = req.ValorTotalEmpenho
		e.Observacao = req.Observacao
		e.Data = data
		e.Cliente = nil
		e.Produtos = nil

		if err := s.repo.UpdateTx(tx, e); err != nil {
			return err
		}
		atualizado = e
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.audit(ctx, actor, "UPDATE", id,
		map[string]any{"numero": atualizado.Numero, "classificacao": atualizado.Classificacao},
		map[string]any{"numero": anterior.Numero, "classificacao": anterior.Classificacao})

	return empenhoToResponse(atualizado), nil
}

// Excluir removes the empenho and its line items in one transaction. An
// empenho already converted into a venda is never deleted — the sale keeps
// referencing it.
func (s *empenhoService) Excluir(ctx context.Context, actor Actor, id uint) error {
	var anterior *model.Empenho
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		e, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmpenhoNaoEncontrado
			}
			return err
		}
		anterior = e

		vinculada, err := s.repo.VendaVinculadaTx(tx, id)
		if err != nil {
			return err
		}
		if vinculada {
			return ErrEmpenhoConvertido
		}
		return s.repo.DeleteComProdutosTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}

	s.audit(ctx, actor, "DELETE", id, nil, map[string]any{
		"numero": anterior.Numero, "cliente_uasg": anterior.ClienteUASG,
		"classificacao": anterior.Classificacao,
		"valor_total":   anterior.ValorTotalEmpenho,
	})
	return nil
}

func (s *empenhoService) ExportarXLSX(ctx context.Context) (*bytes.Buffer, error) {
	empenhos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar empenhos: %w", err)
	}
	return infra.ExportEmpenhosXLSX(empenhos)
}

func (s *empenhoService) GerarPDF(ctx context.Context, id uint) (*bytes.Buffer, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpenhoNaoEncontrado
		}
		return nil, err
	}
	return infra.GenerateEmpenhoPDF(e)
}

func (s *empenhoService) audit(ctx context.Context, actor Actor, action string, recordID uint, details, oldData map[string]any) {
	detailsJSON, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserName:  actor.Nome,
		Action:    action,
		Tabela:    "empenhos",
		RecordID:  recordID,
		Details:   string(detailsJSON),
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if actor.ID != 0 {
		id := actor.ID
		entry.UserID = &id
	}
	if oldData != nil {
		oldJSON, _ := json.Marshal(oldData)
		old := string(oldJSON)
		entry.OldData = &old
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Uint("empenho_id", recordID).Str("action", action).
			Msg("falha ao gravar auditoria de empenho")
	}
}

func empenhoToResponse(e *model.Empenho) *dto.EmpenhoResponse {
	resp := &dto.EmpenhoResponse{
		ID:                e.ID,
		Numero:            e.Numero,
		ClienteUASG:       e.ClienteUASG,
		Classificacao:     e.Classificacao,
		Pregao:            e.Pregao,
		Item:              e.Item,
		Prioridade:        e.Prioridade,
		ValorTotalEmpenho: e.ValorTotalEmpenho,
		Observacao:        e.Observacao,
	}
	if e.Cliente != nil {
		resp.ClienteNome = e.Cliente.NomeOrgaos
	}
	if e.Data != nil {
		d := e.Data.Format("2006-01-02")
		resp.Data = &d
	}
	return resp
}
