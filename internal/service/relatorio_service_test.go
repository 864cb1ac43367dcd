package service

import (
	"context"
	"errors"
	"testing"

	"licitasis/internal/dto"
	"licitasis/internal/model"
	"licitasis/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRelatorioRepo returns canned rows (or a terminal failure).
type stubRelatorioRepo struct {
	rows []dto.VendaClienteRow
	tier int
	err  error
}

func (r *stubRelatorioRepo) VendasPorCliente(_ context.Context, _ string) ([]dto.VendaClienteRow, int, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.rows, r.tier, nil
}

var _ repository.RelatorioRepository = (*stubRelatorioRepo)(nil)

func relatorioSvcFixture(rel *stubRelatorioRepo) RelatorioService {
	clientes := newStubClienteRepo(&model.Cliente{UASG: "986531", NomeOrgaos: "Ministério X"})
	vendas := newStubVendaRepo()
	empenhos := newStubEmpenhoRepo()
	estoque := NewEstoqueService(&stubProdutoRepo{})
	return NewRelatorioService(rel, clientes, vendas, empenhos, estoque)
}

func linha(vendaID uint, status, valorTotal, lucro string) dto.VendaClienteRow {
	return dto.VendaClienteRow{
		VendaID:         vendaID,
		StatusPagamento: status,
		ValorTotal:      dec(valorTotal),
		LucroProduto:    dec(lucro),
	}
}

func TestRelatorioClienteInexistenteEnvelopeValido(t *testing.T) {
	svc := relatorioSvcFixture(&stubRelatorioRepo{tier: 1})

	rel, err := svc.VendasPorCliente(context.Background(), "000000")
	require.NoError(t, err, "cliente inexistente não é erro HTTP")
	assert.NotNil(t, rel.Vendas)
	assert.Empty(t, rel.Vendas)
	assert.Equal(t, "Cliente não encontrado", rel.Erro)
	assert.Zero(t, rel.Resumo.TotalVendas)
}

func TestRelatorioFalhaTerminalEnvelopeValido(t *testing.T) {
	svc := relatorioSvcFixture(&stubRelatorioRepo{err: errors.New("relation does not exist")})

	rel, err := svc.VendasPorCliente(context.Background(), "986531")
	require.NoError(t, err)
	require.NotNil(t, rel.Cliente)
	assert.Equal(t, "Ministério X", rel.Cliente.NomeOrgaos)
	assert.Empty(t, rel.Vendas)
	assert.NotEmpty(t, rel.Erro)
}

func TestResumoContaPorLinhaDoRelatorio(t *testing.T) {
	// Venda 1 tem duas linhas de produto; venda 2 e 3 têm uma cada. O resumo
	// segue as linhas do relatório: cada linha conta e soma o seu valor_total.
	svc := relatorioSvcFixture(&stubRelatorioRepo{tier: 1, rows: []dto.VendaClienteRow{
		linha(1, model.StatusRecebido, "500.00", "100.00"),
		linha(1, model.StatusRecebido, "500.00", "50.00"),
		linha(2, model.StatusPendente, "200.00", "20.00"),
		linha(3, "Não Recebido", "80.00", "8.00"),
	}})

	rel, err := svc.VendasPorCliente(context.Background(), "986531")
	require.NoError(t, err)

	resumo := rel.Resumo
	assert.Equal(t, 4, resumo.TotalVendas, "uma contagem por linha do resultado")
	assert.True(t, resumo.ValorTotalVendas.Equal(dec("1280.00")), "valor_total somado por linha")
	assert.True(t, resumo.LucroTotal.Equal(dec("178.00")), "lucro soma todas as linhas")
	assert.Equal(t, 2, resumo.VendasRecebidas)
	assert.Equal(t, 2, resumo.VendasPendentes, "status fora do par canônico conta como pendente")
	assert.Equal(t, len(rel.Vendas), resumo.VendasRecebidas+resumo.VendasPendentes)
}

func TestRelatorioLeituraIdempotente(t *testing.T) {
	svc := relatorioSvcFixture(&stubRelatorioRepo{tier: 2, rows: []dto.VendaClienteRow{
		linha(1, model.StatusRecebido, "100.00", "10.00"),
	}})

	a, err := svc.VendasPorCliente(context.Background(), "986531")
	require.NoError(t, err)
	b, err := svc.VendasPorCliente(context.Background(), "986531")
	require.NoError(t, err)
	assert.Equal(t, a.Resumo, b.Resumo, "consulta não altera estado")
}

func TestDashboardAgregaFontes(t *testing.T) {
	clientes := newStubClienteRepo(
		&model.Cliente{UASG: "986531", NomeOrgaos: "Ministério X"},
		&model.Cliente{UASG: "120001", NomeOrgaos: "Comando Y"},
	)
	vendas := newStubVendaRepo(
		&model.Venda{ID: 1, StatusPagamento: model.StatusRecebido, ValorTotal: dec("1500.50")},
		&model.Venda{ID: 2, StatusPagamento: model.StatusPendente, ValorTotal: dec("300.25")},
		&model.Venda{ID: 3, StatusPagamento: "Não Recebido", ValorTotal: dec("0.01")},
	)
	empenhos := newStubEmpenhoRepo(
		&model.Empenho{ID: 1, Numero: "A", Classificacao: model.ClassificacaoPendente},
		&model.Empenho{ID: 2, Numero: "B", Classificacao: model.ClassificacaoPago},
	)
	estoque := NewEstoqueService(&stubProdutoRepo{})
	svc := NewRelatorioService(&stubRelatorioRepo{tier: 1}, clientes, vendas, empenhos, estoque)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.TotalClientes)
	assert.Equal(t, int64(3), dash.TotalVendas)
	assert.Equal(t, int64(1), dash.VendasRecebidas)
	assert.Equal(t, int64(2), dash.VendasPendentes)
	assert.True(t, dash.ValorTotalVendas.Equal(dec("1800.76")), "soma em decimal, sem passar por float")
	assert.Equal(t, int64(1), dash.EmpenhosPorStatus[model.ClassificacaoPago])
}
