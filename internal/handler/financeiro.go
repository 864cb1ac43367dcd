package handler

import (
	"errors"
	"net/http"

	"licitasis/internal/apierror"
	"licitasis/internal/dto"
	"licitasis/internal/middleware"
	"licitasis/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceiroHandler struct{ svc service.FinanceiroService }

func NewFinanceiroHandler(svc service.FinanceiroService) *FinanceiroHandler {
	return &FinanceiroHandler{svc: svc}
}

func actorFrom(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	actor := service.Actor{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims != nil {
		actor.ID = claims.UserID
		actor.Nome = claims.Nome
	}
	return actor
}

// AtualizarStatus godoc
// @Summary      Atualizar status de pagamento
// @Description  Marca uma venda como Recebido, ou reverte para Não Recebido mediante a senha financeira.
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AtualizarStatusRequest true "Venda, novo status e senha (somente para reversão)"
// @Success      200  {object} dto.StatusResult
// @Failure      400  {object} dto.StatusResult
// @Failure      403  {object} dto.StatusResult
// @Failure      429  {object} dto.StatusResult
// @Router       /v1/financeiro/status-pagamento [post]
func (h *FinanceiroHandler) AtualizarStatus(c *gin.Context) {
	var req dto.AtualizarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	venda, err := h.svc.AtualizarStatusPagamento(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Erro ao atualizar status"
		switch {
		case errors.Is(err, service.ErrStatusInvalido):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, service.ErrVendaNaoEncontrada):
			status, msg = http.StatusNotFound, err.Error()
		case errors.Is(err, service.ErrNaoAutorizado):
			status, msg = http.StatusForbidden, err.Error()
		case errors.Is(err, service.ErrTentativasExcedidas):
			status, msg = http.StatusTooManyRequests, err.Error()
		}
		c.JSON(status, dto.StatusResult{Success: false, Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResult{
		Success: true,
		Message: "Status atualizado para " + venda.StatusPagamento,
	})
}

// ContasRecebidas godoc
// @Summary      Listar contas recebidas
// @Description  Lista paginada de vendas com pagamento recebido, filtrável por NF, órgão ou UASG.
// @Tags         financeiro
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Filtro por NF, nome do órgão ou UASG"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 20)"
// @Success      200    {object} dto.ContaRecebidaListResponse
// @Failure      500    {object} apierror.APIError
// @Router       /v1/financeiro/contas-recebidas [get]
func (h *FinanceiroHandler) ContasRecebidas(c *gin.Context) {
	var filter dto.ContaRecebidaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListContasRecebidas(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar contas recebidas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
