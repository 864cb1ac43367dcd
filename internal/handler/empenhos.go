package handler

import (
	"errors"
	"net/http"

	"licitasis/internal/apierror"
	"licitasis/internal/dto"
	"licitasis/internal/service"

	"github.com/gin-gonic/gin"
)

type EmpenhosHandler struct{ svc service.EmpenhoService }

func NewEmpenhosHandler(svc service.EmpenhoService) *EmpenhosHandler {
	return &EmpenhosHandler{svc: svc}
}

func empenhoErrStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmpenhoNaoEncontrado),
		errors.Is(err, service.ErrClienteNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, service.ErrClassificacaoInvalida):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNumeroDuplicado),
		errors.Is(err, service.ErrEmpenhoConvertido):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Cadastrar godoc
// @Summary      Cadastrar empenho
// @Tags         empenhos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CadastrarEmpenhoRequest true "Dados do empenho"
// @Success      201  {object} dto.EmpenhoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/empenhos [post]
func (h *EmpenhosHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarEmpenhoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cadastrar(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar empenhos
// @Tags         empenhos
// @Produce      json
// @Security     BearerAuth
// @Param        classificacao query string false "Pendente | Faturado | Entregue | Liquidado | Pago | Cancelado | all"
// @Param        uasg          query string false "UASG do cliente"
// @Param        search        query string false "Filtro por número ou pregão"
// @Param        page          query int    false "Página (default 1)"
// @Param        limit         query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.EmpenhoListResponse
// @Router       /v1/empenhos [get]
func (h *EmpenhosHandler) Listar(c *gin.Context) {
	var filter dto.EmpenhoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar empenhos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary      Detalhar empenho
// @Tags         empenhos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do empenho"
// @Success      200 {object} dto.EmpenhoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/empenhos/{id} [get]
func (h *EmpenhosHandler) Buscar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar empenho
// @Tags         empenhos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                        true "ID do empenho"
// @Param        body body dto.AtualizarEmpenhoRequest true "Dados atualizados"
// @Success      200  {object} dto.EmpenhoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/empenhos/{id} [put]
func (h *EmpenhosHandler) Atualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AtualizarEmpenhoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarClassificacao godoc
// @Summary      Atualizar classificação do empenho
// @Description  Somente os seis valores do ciclo de vida são aceitos; qualquer outro é rejeitado sem alterar o registro.
// @Tags         empenhos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                              true "ID do empenho"
// @Param        body body dto.AtualizarClassificacaoRequest true "Nova classificação"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/empenhos/{id}/classificacao [put]
func (h *EmpenhosHandler) AtualizarClassificacao(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AtualizarClassificacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AtualizarClassificacao(c.Request.Context(), actorFrom(c), id, req.Classificacao); err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Excluir godoc
// @Summary      Excluir empenho
// @Description  Remove o empenho e seus itens em uma transação. Empenhos já convertidos em venda não podem ser excluídos.
// @Tags         empenhos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do empenho"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/empenhos/{id} [delete]
func (h *EmpenhosHandler) Excluir(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), actorFrom(c), id); err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportarXLSX godoc
// @Summary      Exportar empenhos em XLSX
// @Tags         empenhos
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200 {file} binary
// @Router       /v1/empenhos/export [get]
func (h *EmpenhosHandler) ExportarXLSX(c *gin.Context) {
	buf, err := h.svc.ExportarXLSX(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao exportar empenhos"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="empenhos.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// GerarPDF godoc
// @Summary      Gerar PDF do empenho
// @Tags         empenhos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path int true "ID do empenho"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/empenhos/{id}/pdf [get]
func (h *EmpenhosHandler) GerarPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	buf, err := h.svc.GerarPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(empenhoErrStatus(err), apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", `inline; filename="empenho.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
