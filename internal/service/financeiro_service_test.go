package service

import (
	"context"
	"encoding/json"
	"testing"

	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const segredo = "Licitasis@2025"

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas map[uint]*model.Venda
}

func newStubVendaRepo(vendas ...*model.Venda) *stubVendaRepo {
	r := &stubVendaRepo{vendas: make(map[uint]*model.Venda)}
	for _, v := range vendas {
		r.vendas[v.ID] = v
	}
	return r
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uint) (*model.Venda, error) {
	return r.FindByIDTx(nil, id)
}
func (r *stubVendaRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *v
	return &clone, nil
}
func (r *stubVendaRepo) UpdateStatusTx(_ *gorm.DB, id uint, status string) error {
	v, ok := r.vendas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.StatusPagamento = status
	return nil
}
func (r *stubVendaRepo) Count(_ context.Context) (int64, error) { return int64(len(r.vendas)), nil }
func (r *stubVendaRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, v := range r.vendas {
		if v.StatusPagamento == status {
			n++
		}
	}
	return n, nil
}
func (r *stubVendaRepo) SumValorTotal(_ context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	for _, v := range r.vendas {
		total = total.Add(v.ValorTotal)
	}
	return total, nil
}
func (r *stubVendaRepo) ListRecebidas(_ context.Context, _ dto.ContaRecebidaFilter) ([]dto.ContaRecebidaItem, int64, error) {
	var items []dto.ContaRecebidaItem
	for _, v := range r.vendas {
		if v.StatusPagamento == model.StatusRecebido {
			items = append(items, dto.ContaRecebidaItem{
				VendaID:         v.ID,
				ClienteUASG:     v.ClienteUASG,
				ValorTotal:      v.ValorTotal,
				StatusPagamento: v.StatusPagamento,
			})
		}
	}
	return items, int64(len(items)), nil
}
func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

type stubAuditRepo struct {
	entries []model.AuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, e *model.AuditLog) error {
	r.entries = append(r.entries, *e)
	return nil
}
func (r *stubAuditRepo) ListByRecord(_ context.Context, _ string, _ uint, _ int) ([]model.AuditLog, error) {
	return r.entries, nil
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

func atorTeste() Actor {
	return Actor{ID: 3, Nome: "Maria Financeiro", IP: "10.0.0.5", UserAgent: "tests"}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestMarcarRecebidoNaoExigeSenha(t *testing.T) {
	vendas := newStubVendaRepo(&model.Venda{ID: 1, StatusPagamento: model.StatusPendente})
	audit := &stubAuditRepo{}
	svc := NewFinanceiroService(vendas, audit, nil, segredo)

	v, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
		ID: 1, Status: model.StatusRecebido,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecebido, v.StatusPagamento)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "UPDATE", audit.entries[0].Action)
	assert.Equal(t, "vendas", audit.entries[0].Tabela)
}

func TestReversaoExigeSenhaCorreta(t *testing.T) {
	vendas := newStubVendaRepo(&model.Venda{ID: 2, StatusPagamento: model.StatusRecebido})
	audit := &stubAuditRepo{}
	svc := NewFinanceiroService(vendas, audit, nil, segredo)

	// Três tentativas com senha errada: nada muda, nada é auditado.
	for i := 0; i < 3; i++ {
		_, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
			ID: 2, Status: model.StatusNaoRecebido, Senha: "chute",
		})
		assert.ErrorIs(t, err, ErrNaoAutorizado)
	}
	atual, _ := vendas.FindByID(context.Background(), 2)
	assert.Equal(t, model.StatusRecebido, atual.StatusPagamento, "status intacto após recusas")
	assert.Empty(t, audit.entries)

	// Senha correta: reverte e audita com o marcador de autorização financeira.
	v, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
		ID: 2, Status: model.StatusNaoRecebido, Senha: segredo,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusNaoRecebido, v.StatusPagamento)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.Details), &details))
	assert.Equal(t, true, details["financial_auth"])
	assert.NotEmpty(t, details["authorized_at"])
	require.NotNil(t, entry.OldData)
	assert.Contains(t, *entry.OldData, model.StatusRecebido)
}

func TestReversaoGravaLiteralLegado(t *testing.T) {
	vendas := newStubVendaRepo(&model.Venda{ID: 9, StatusPagamento: model.StatusRecebido})
	svc := NewFinanceiroService(vendas, &stubAuditRepo{}, nil, segredo)

	v, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
		ID: 9, Status: "Não Recebido", Senha: segredo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Não Recebido", v.StatusPagamento, "literal legado preservado byte a byte")
}

func TestStatusForaDoParCanonicoRejeitado(t *testing.T) {
	vendas := newStubVendaRepo(&model.Venda{ID: 4, StatusPagamento: model.StatusPendente})
	svc := NewFinanceiroService(vendas, &stubAuditRepo{}, nil, segredo)

	for _, status := range []string{"Pago", "recebido", "", "Cancelado"} {
		_, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
			ID: 4, Status: status,
		})
		assert.ErrorIs(t, err, ErrStatusInvalido, "status %q deve ser rejeitado", status)
	}
	atual, _ := vendas.FindByID(context.Background(), 4)
	assert.Equal(t, model.StatusPendente, atual.StatusPagamento)
}

func TestVendaInexistente(t *testing.T) {
	svc := NewFinanceiroService(newStubVendaRepo(), &stubAuditRepo{}, nil, segredo)
	_, err := svc.AtualizarStatusPagamento(context.Background(), atorTeste(), dto.AtualizarStatusRequest{
		ID: 42, Status: model.StatusRecebido,
	})
	assert.ErrorIs(t, err, ErrVendaNaoEncontrada)
}

func TestListContasRecebidasSoRetornaRecebidas(t *testing.T) {
	vendas := newStubVendaRepo(
		&model.Venda{ID: 1, ClienteUASG: "986531", StatusPagamento: model.StatusRecebido},
		&model.Venda{ID: 2, ClienteUASG: "986531", StatusPagamento: model.StatusPendente},
		&model.Venda{ID: 3, ClienteUASG: "120001", StatusPagamento: model.StatusNaoRecebido},
	)
	svc := NewFinanceiroService(vendas, &stubAuditRepo{}, nil, segredo)

	resp, err := svc.ListContasRecebidas(context.Background(), dto.ContaRecebidaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, uint(1), resp.Data[0].VendaID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}
