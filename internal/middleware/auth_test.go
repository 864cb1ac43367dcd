package middleware

import (
	"testing"

	"licitasis/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestHasPermissionMatriz(t *testing.T) {
	cases := []struct {
		permissao string
		module    string
		action    string
		want      bool
	}{
		{model.PermAdministrador, "financeiro", ActionDelete, true},
		{model.PermAdministrador, "qualquer", "qualquer", true},

		{model.PermNivel1, "clientes", ActionView, true},
		{model.PermNivel1, "clientes", ActionCreate, false},
		{model.PermNivel1, "financeiro", ActionView, false},

		{model.PermNivel2, "financeiro", ActionView, true},
		{model.PermNivel2, "financeiro", ActionEdit, false},
		{model.PermNivel2, "produtos", ActionDelete, true},
		{model.PermNivel2, "fornecedores", ActionDelete, false},

		{model.PermNivel3, "financeiro", ActionView, true},
		{model.PermNivel3, "financeiro", ActionEdit, false},
		{model.PermNivel3, "fornecedores", ActionDelete, true},
		{model.PermNivel3, "transportadoras", ActionCreate, true},
		{model.PermNivel3, "clientes", ActionDelete, false},

		{model.PermInvestidor, "financeiro", ActionView, true},
		{model.PermInvestidor, "financeiro", ActionEdit, false},
		{model.PermInvestidor, "clientes", ActionView, false},

		{"Nivel_Desconhecido", "clientes", ActionView, false},
	}
	for _, tc := range cases {
		got := HasPermission(tc.permissao, tc.module, tc.action)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.permissao, tc.module, tc.action)
	}
}
