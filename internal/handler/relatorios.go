package handler

import (
	"net/http"

	"licitasis/internal/apierror"
	"licitasis/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct {
	relatorios service.RelatorioService
	estoque    service.EstoqueService
}

func NewRelatoriosHandler(relatorios service.RelatorioService, estoque service.EstoqueService) *RelatoriosHandler {
	return &RelatoriosHandler{relatorios: relatorios, estoque: estoque}
}

// VendasCliente godoc
// @Summary      Relatório de vendas de um cliente
// @Description  Vendas detalhadas por produto de um cliente (UASG), com transportadora e lucro quando o schema da instalação permite.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        uasg path string true "UASG do cliente"
// @Success      200  {object} dto.VendaClienteReport
// @Failure      500  {object} apierror.APIError
// @Router       /v1/relatorios/vendas-cliente/{uasg} [get]
func (h *RelatoriosHandler) VendasCliente(c *gin.Context) {
	uasg := c.Param("uasg")
	if uasg == "" {
		c.JSON(http.StatusBadRequest, apierror.New("UASG é obrigatória"))
		return
	}
	resp, err := h.relatorios.VendasPorCliente(c.Request.Context(), uasg)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar relatório"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estoque godoc
// @Summary      Relatório de estoque
// @Description  Estoque derivado de cada produto (inicial + entradas − saídas), com situação e agregados.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.EstoqueReportResponse
// @Failure      500 {object} apierror.APIError
// @Router       /v1/relatorios/estoque [get]
func (h *RelatoriosHandler) Estoque(c *gin.Context) {
	resp, err := h.estoque.Relatorio(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar relatório de estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary      Painel consolidado
// @Description  Totais de clientes, vendas, empenhos por classificação e resumo de estoque.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResponse
// @Failure      500 {object} apierror.APIError
// @Router       /v1/relatorios/dashboard [get]
func (h *RelatoriosHandler) Dashboard(c *gin.Context) {
	resp, err := h.relatorios.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar painel"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
