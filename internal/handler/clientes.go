package handler

import (
	"errors"
	"net/http"

	"licitasis/internal/apierror"
	"licitasis/internal/dto"
	"licitasis/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Cadastrar godoc
// @Summary      Cadastrar cliente
// @Description  Cria um cliente identificado pela UASG (código do órgão público).
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CadastrarClienteRequest true "Dados do cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cadastrar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUASGDuplicada) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao cadastrar cliente"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Buscar godoc
// @Summary      Buscar cliente por UASG
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        uasg path string true "UASG do cliente"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/clientes/{uasg} [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.BuscarPorUASG(c.Request.Context(), c.Param("uasg"))
	if err != nil {
		if errors.Is(err, service.ErrClienteNaoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao buscar cliente"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
