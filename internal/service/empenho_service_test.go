package service

import (
	"context"
	"testing"

	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubEmpenhoRepo struct {
	empenhos   map[uint]*model.Empenho
	convertido map[uint]bool
	seq        uint
}

func newStubEmpenhoRepo(empenhos ...*model.Empenho) *stubEmpenhoRepo {
	r := &stubEmpenhoRepo{
		empenhos:   make(map[uint]*model.Empenho),
		convertido: make(map[uint]bool),
	}
	for _, e := range empenhos {
		r.empenhos[e.ID] = e
		if e.ID > r.seq {
			r.seq = e.ID
		}
	}
	return r
}

func (r *stubEmpenhoRepo) Create(_ context.Context, e *model.Empenho) error {
	r.seq++
	e.ID = r.seq
	r.empenhos[e.ID] = e
	return nil
}

func (r *stubEmpenhoRepo) FindByID(_ context.Context, id uint) (*model.Empenho, error) {
	e, ok := r.empenhos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmpenhoRepo) FindByNumero(_ context.Context, numero string) (*model.Empenho, error) {
	for _, e := range r.empenhos {
		if e.Numero == numero {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpenhoRepo) List(_ context.Context, _ dto.EmpenhoFilter) ([]model.Empenho, int64, error) {
	var out []model.Empenho
	for _, e := range r.empenhos {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEmpenhoRepo) ListAll(ctx context.Context) ([]model.Empenho, error) {
	out, _, _ := r.List(ctx, dto.EmpenhoFilter{})
	return out, nil
}

func (r *stubEmpenhoRepo) UpdateClassificacao(_ context.Context, id uint, c string) error {
	e, ok := r.empenhos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Classificacao = c
	return nil
}

func (r *stubEmpenhoRepo) CountByClassificacao(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, e := range r.empenhos {
		out[e.Classificacao]++
	}
	return out, nil
}

func (r *stubEmpenhoRepo) FindByNumeroExcetoTx(_ *gorm.DB, numero string, excetoID uint) (*model.Empenho, error) {
	for _, e := range r.empenhos {
		if e.Numero == numero && e.ID != excetoID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmpenhoRepo) UpdateTx(_ *gorm.DB, e *model.Empenho) error {
	r.empenhos[e.ID] = e
	return nil
}

func (r *stubEmpenhoRepo) DeleteComProdutosTx(_ *gorm.DB, id uint) error {
	if _, ok := r.empenhos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.empenhos, id)
	return nil
}

func (r *stubEmpenhoRepo) VendaVinculadaTx(_ *gorm.DB, id uint) (bool, error) {
	return r.convertido[id], nil
}

func (r *stubEmpenhoRepo) DB() *gorm.DB { return nil }

var _ repository.EmpenhoRepository = (*stubEmpenhoRepo)(nil)

type stubClienteRepo struct {
	clientes map[string]*model.Cliente
}

func newStubClienteRepo(clientes ...*model.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{clientes: make(map[string]*model.Cliente)}
	for _, c := range clientes {
		r.clientes[c.UASG] = c
	}
	return r
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.clientes[c.UASG] = c
	return nil
}
func (r *stubClienteRepo) FindByUASG(_ context.Context, uasg string) (*model.Cliente, error) {
	c, ok := r.clientes[uasg]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clientes)), nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func empenhoSvcFixture(empenhos ...*model.Empenho) (EmpenhoService, *stubEmpenhoRepo, *stubAuditRepo) {
	repo := newStubEmpenhoRepo(empenhos...)
	audit := &stubAuditRepo{}
	clientes := newStubClienteRepo(&model.Cliente{UASG: "986531", NomeOrgaos: "Ministério X"})
	return NewEmpenhoService(repo, clientes, audit), repo, audit
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCadastrarEmpenhoDerivaTotalDosItens(t *testing.T) {
	svc, _, _ := empenhoSvcFixture()

	resp, err := svc.Cadastrar(context.Background(), atorTeste(), dto.CadastrarEmpenhoRequest{
		Numero:      "2025NE000123",
		ClienteUASG: "986531",
		Produtos: []dto.EmpenhoProdutoRequest{
			{ProdutoID: 1, Quantidade: dec("2"), ValorUnitario: dec("150.00")},
			{ProdutoID: 2, Quantidade: dec("1"), ValorUnitario: dec("99.90")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ClassificacaoPendente, resp.Classificacao)
	assert.True(t, resp.ValorTotalEmpenho.Equal(dec("399.90")))
}

func TestCadastrarEmpenhoNumeroDuplicado(t *testing.T) {
	svc, _, _ := empenhoSvcFixture(&model.Empenho{ID: 1, Numero: "2025NE000001", ClienteUASG: "986531"})

	_, err := svc.Cadastrar(context.Background(), atorTeste(), dto.CadastrarEmpenhoRequest{
		Numero: "2025NE000001", ClienteUASG: "986531",
	})
	assert.ErrorIs(t, err, ErrNumeroDuplicado)
}

func TestCadastrarEmpenhoClienteInexistente(t *testing.T) {
	svc, _, _ := empenhoSvcFixture()
	_, err := svc.Cadastrar(context.Background(), atorTeste(), dto.CadastrarEmpenhoRequest{
		Numero: "2025NE000002", ClienteUASG: "000000",
	})
	assert.ErrorIs(t, err, ErrClienteNaoEncontrado)
}

func TestAtualizarClassificacaoForaDoConjunto(t *testing.T) {
	svc, repo, audit := empenhoSvcFixture(&model.Empenho{
		ID: 1, Numero: "2025NE000001", Classificacao: model.ClassificacaoPendente,
	})

	for _, invalida := range []string{"Vendido", "pago", "", "Arquivado"} {
		err := svc.AtualizarClassificacao(context.Background(), atorTeste(), 1, invalida)
		assert.ErrorIs(t, err, ErrClassificacaoInvalida, "classificação %q deve ser rejeitada", invalida)
	}
	assert.Equal(t, model.ClassificacaoPendente, repo.empenhos[1].Classificacao, "registro intacto")
	assert.Empty(t, audit.entries)
}

func TestAtualizarClassificacaoValidaAudita(t *testing.T) {
	svc, repo, audit := empenhoSvcFixture(&model.Empenho{
		ID: 1, Numero: "2025NE000001", Classificacao: model.ClassificacaoPendente,
	})

	err := svc.AtualizarClassificacao(context.Background(), atorTeste(), 1, model.ClassificacaoLiquidado)
	require.NoError(t, err)
	assert.Equal(t, model.ClassificacaoLiquidado, repo.empenhos[1].Classificacao)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "empenhos", entry.Tabela)
	assert.Contains(t, entry.Details, model.ClassificacaoLiquidado)
	require.NotNil(t, entry.OldData)
	assert.Contains(t, *entry.OldData, model.ClassificacaoPendente)
}

func TestExcluirEmpenhoConvertidoRecusado(t *testing.T) {
	svc, repo, _ := empenhoSvcFixture(&model.Empenho{ID: 5, Numero: "2025NE000005"})
	repo.convertido[5] = true

	err := svc.Excluir(context.Background(), atorTeste(), 5)
	assert.ErrorIs(t, err, ErrEmpenhoConvertido)
	assert.Contains(t, repo.empenhos, uint(5), "empenho convertido permanece")
}

func TestExcluirEmpenhoAuditaSnapshotAnterior(t *testing.T) {
	svc, repo, audit := empenhoSvcFixture(&model.Empenho{
		ID: 6, Numero: "2025NE000006", ClienteUASG: "986531",
		Classificacao: model.ClassificacaoCancelado,
	})

	err := svc.Excluir(context.Background(), atorTeste(), 6)
	require.NoError(t, err)
	assert.NotContains(t, repo.empenhos, uint(6))

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "DELETE", audit.entries[0].Action)
	require.NotNil(t, audit.entries[0].OldData)
	assert.Contains(t, *audit.entries[0].OldData, "2025NE000006")
}

func TestAtualizarEmpenhoNumeroConflitante(t *testing.T) {
	svc, _, _ := empenhoSvcFixture(
		&model.Empenho{ID: 1, Numero: "2025NE000001", Classificacao: model.ClassificacaoPendente},
		&model.Empenho{ID: 2, Numero: "2025NE000002", Classificacao: model.ClassificacaoPendente},
	)

	_, err := svc.Atualizar(context.Background(), atorTeste(), 2, dto.AtualizarEmpenhoRequest{
		Numero: "2025NE000001", Classificacao: model.ClassificacaoFaturado,
	})
	assert.ErrorIs(t, err, ErrNumeroDuplicado)
}
