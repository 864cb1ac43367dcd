package middleware

import (
	"net/http"
	"strings"

	"licitasis/internal/apierror"
	"licitasis/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID    uint   `json:"user_id"`
	Nome      string `json:"nome"`
	Permissao string `json:"permissao"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido ou expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Actions a permission level can hold on a module.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// defaultPermissions is the módulo×ação matrix per permission level.
// Administrador bypasses the matrix entirely; Investidor only sees the
// financial module.
var defaultPermissions = map[string]map[string][]string{
	model.PermNivel1: {
		ActionView: {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores"},
	},
	model.PermNivel2: {
		ActionView:   {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores", "financeiro", "transportadoras"},
		ActionEdit:   {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores"},
		ActionCreate: {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores"},
		ActionDelete: {"produtos"},
	},
	model.PermNivel3: {
		ActionView:   {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores", "financeiro", "transportadoras"},
		ActionEdit:   {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores", "transportadoras"},
		ActionCreate: {"clientes", "produtos", "empenhos", "compras", "vendas", "fornecedores", "transportadoras"},
		ActionDelete: {"produtos", "fornecedores"},
	},
	model.PermInvestidor: {
		ActionView: {"financeiro"},
	},
}

// HasPermission resolves the matrix for a (level, module, action) triple.
func HasPermission(permissao, module, action string) bool {
	if permissao == model.PermAdministrador {
		return true
	}
	modules, ok := defaultPermissions[permissao][action]
	if !ok {
		return false
	}
	for _, m := range modules {
		if m == module {
			return true
		}
	}
	return false
}

// RequirePermission rejects requests whose JWT level lacks the given action
// on the given module.
func RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !HasPermission(claims.Permissao, module, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permissão insuficiente"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
