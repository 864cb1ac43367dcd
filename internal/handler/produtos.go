package handler

import (
	"errors"
	"net/http"

	"licitasis/internal/apierror"
	"licitasis/internal/dto"
	"licitasis/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct {
	svc     service.ProdutoService
	estoque service.EstoqueService
}

func NewProdutosHandler(svc service.ProdutoService, estoque service.EstoqueService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc, estoque: estoque}
}

// Cadastrar godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CadastrarProdutoRequest true "Dados do produto"
// @Success      201  {object} dto.ProdutoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cadastrar(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao cadastrar produto"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProdutoResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary      Buscar produto por ID
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) Buscar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProdutoNaoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao buscar produto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estoque godoc
// @Summary      Estoque derivado de um produto
// @Description  Estoque calculado (inicial + entradas − saídas) com valor e situação. Nada é persistido.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.EstoqueProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id}/estoque [get]
func (h *ProdutosHandler) Estoque(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.estoque.ProdutoPorID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProdutoNaoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao calcular estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
