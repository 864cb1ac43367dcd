package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"licitasis/internal/dto"
	"licitasis/internal/infra"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Sentinel errors the handler maps to HTTP statuses. The messages are what
// the client sees inside the {success, error} envelope.
var (
	ErrVendaNaoEncontrada  = errors.New("Venda não encontrada")
	ErrStatusInvalido      = errors.New("Status inválido")
	ErrNaoAutorizado       = errors.New("Não autorizado")
	ErrTentativasExcedidas = errors.New("Muitas tentativas. Tente novamente mais tarde")
)

// Actor identifies who performed a financial mutation, for auditing.
type Actor struct {
	ID        uint
	Nome      string
	IP        string
	UserAgent string
}

type FinanceiroService interface {
	// AtualizarStatusPagamento flips a sale's payment status. Marking a sale
	// as received needs no extra authorization; reverting a received sale to
	// "Não Recebido" requires the financial secret and is throttled per
	// (actor, venda).
	AtualizarStatusPagamento(ctx context.Context, actor Actor, req dto.AtualizarStatusRequest) (*model.Venda, error)
	ListContasRecebidas(ctx context.Context, filter dto.ContaRecebidaFilter) (*dto.ContaRecebidaListResponse, error)
}

type financeiroService struct {
	vendaRepo repository.VendaRepository
	auditRepo repository.AuditRepository
	limiter   *infra.AttemptLimiter
	secret    string
}

func NewFinanceiroService(
	vendaRepo repository.VendaRepository,
	auditRepo repository.AuditRepository,
	limiter *infra.AttemptLimiter,
	secret string,
) FinanceiroService {
	return &financeiroService{
		vendaRepo: vendaRepo,
		auditRepo: auditRepo,
		limiter:   limiter,
		secret:    secret,
	}
}

func (s *financeiroService) AtualizarStatusPagamento(ctx context.Context, actor Actor, req dto.AtualizarStatusRequest) (*model.Venda, error) {
	if req.Status != model.StatusRecebido && req.Status != model.StatusNaoRecebido {
		return nil, ErrStatusInvalido
	}

	reversao := req.Status == model.StatusNaoRecebido
	if reversao {
		if s.limiter != nil && s.limiter.Blocked(ctx, actor.ID, req.ID) {
			log.Warn().Uint("user_id", actor.ID).Uint("venda_id", req.ID).
				Msg("reversão bloqueada: tentativas excedidas")
			return nil, ErrTentativasExcedidas
		}
		if subtle.ConstantTimeCompare([]byte(req.Senha), []byte(s.secret)) != 1 {
			if s.limiter != nil {
				s.limiter.RegisterFailure(ctx, actor.ID, req.ID)
			}
			log.Warn().Uint("user_id", actor.ID).Uint("venda_id", req.ID).
				Str("ip", actor.IP).Msg("reversão recusada: senha financeira incorreta")
			return nil, ErrNaoAutorizado
		}
		if s.limiter != nil {
			s.limiter.Reset(ctx, actor.ID, req.ID)
		}
	}

	var antes, depois *model.Venda
	txErr := runTx(ctx, s.vendaRepo.DB(), func(tx *gorm.DB) error {
		v, err := s.vendaRepo.FindByIDTx(tx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendaNaoEncontrada
			}
			return err
		}
		antes = v
		if err := s.vendaRepo.UpdateStatusTx(tx, req.ID, req.Status); err != nil {
			return err
		}
		depois, err = s.vendaRepo.FindByIDTx(tx, req.ID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.auditStatus(ctx, actor, antes, depois, reversao)

	log.Info().Uint("venda_id", req.ID).
		Str("de", antes.StatusPagamento).Str("para", depois.StatusPagamento).
		Uint("user_id", actor.ID).Msg("status de pagamento atualizado")
	return depois, nil
}

// auditStatus records the mutation after commit. Best-effort: an audit
// failure never undoes the status change, but it is always logged.
func (s *financeiroService) auditStatus(ctx context.Context, actor Actor, antes, depois *model.Venda, reversao bool) {
	oldJSON, _ := json.Marshal(map[string]any{"status_pagamento": antes.StatusPagamento})
	details := map[string]any{
		"status_pagamento": depois.StatusPagamento,
	}
	if reversao {
		details["financial_auth"] = true
		details["authorized_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	detailsJSON, _ := json.Marshal(details)

	old := string(oldJSON)
	userID := actor.ID
	entry := &model.AuditLog{
		UserID:    &userID,
		UserName:  actor.Nome,
		Action:    "UPDATE",
		Tabela:    "vendas",
		RecordID:  depois.ID,
		Details:   string(detailsJSON),
		OldData:   &old,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Uint("venda_id", depois.ID).
			Msg("falha ao gravar auditoria de status de pagamento")
	}
}

func (s *financeiroService) ListContasRecebidas(ctx context.Context, filter dto.ContaRecebidaFilter) (*dto.ContaRecebidaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	items, total, err := s.vendaRepo.ListRecebidas(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("contas recebidas: %w", err)
	}
	if items == nil {
		items = []dto.ContaRecebidaItem{}
	}
	return &dto.ContaRecebidaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
