package router

import (
	"time"

	"licitasis/internal/config"
	"licitasis/internal/handler"
	"licitasis/internal/infra"
	"licitasis/internal/middleware"
	"licitasis/internal/repository"
	"licitasis/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis, with the
// startup schema Capabilities injected into the schema-sensitive repositories.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, caps infra.Capabilities) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	limiter := infra.NewAttemptLimiter(rdb, cfg.SecretMaxAttempts,
		time.Duration(cfg.SecretCooldownMin)*time.Minute)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	produtoRepo := repository.NewProdutoRepository(db, caps)
	vendaRepo := repository.NewVendaRepository(db, caps)
	empenhoRepo := repository.NewEmpenhoRepository(db)
	relatorioRepo := repository.NewRelatorioRepository(db, caps)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	produtoSvc := service.NewProdutoService(produtoRepo)
	estoqueSvc := service.NewEstoqueService(produtoRepo)
	empenhoSvc := service.NewEmpenhoService(empenhoRepo, clienteRepo, auditRepo)
	financeiroSvc := service.NewFinanceiroService(vendaRepo, auditRepo, limiter, cfg.FinancialSecret)
	relatorioSvc := service.NewRelatorioService(relatorioRepo, clienteRepo, vendaRepo, empenhoRepo, estoqueSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc, estoqueSvc)
	empenhosH := handler.NewEmpenhosHandler(empenhoSvc)
	financeiroH := handler.NewFinanceiroHandler(financeiroSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc, estoqueSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — permission checks mirror the módulo×ação matrix
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes")
		{
			clientes.GET("/:uasg", middleware.RequirePermission("clientes", middleware.ActionView), clientesH.Buscar)
			clientes.POST("", middleware.RequirePermission("clientes", middleware.ActionCreate), clientesH.Cadastrar)
		}

		produtos := v1.Group("/produtos")
		{
			produtos.GET("", middleware.RequirePermission("produtos", middleware.ActionView), produtosH.Listar)
			produtos.GET("/:id", middleware.RequirePermission("produtos", middleware.ActionView), produtosH.Buscar)
			produtos.GET("/:id/estoque", middleware.RequirePermission("produtos", middleware.ActionView), produtosH.Estoque)
			produtos.POST("", middleware.RequirePermission("produtos", middleware.ActionCreate), produtosH.Cadastrar)
		}

		empenhos := v1.Group("/empenhos")
		{
			empenhos.GET("", middleware.RequirePermission("empenhos", middleware.ActionView), empenhosH.Listar)
			empenhos.GET("/export", middleware.RequirePermission("empenhos", middleware.ActionView), empenhosH.ExportarXLSX)
			empenhos.GET("/:id", middleware.RequirePermission("empenhos", middleware.ActionView), empenhosH.Buscar)
			empenhos.GET("/:id/pdf", middleware.RequirePermission("empenhos", middleware.ActionView), empenhosH.GerarPDF)
			empenhos.POST("", middleware.RequirePermission("empenhos", middleware.ActionCreate), empenhosH.Cadastrar)
			empenhos.PUT("/:id", middleware.RequirePermission("empenhos", middleware.ActionEdit), empenhosH.Atualizar)
			empenhos.PUT("/:id/classificacao", middleware.RequirePermission("empenhos", middleware.ActionEdit), empenhosH.AtualizarClassificacao)
			empenhos.DELETE("/:id", middleware.RequirePermission("empenhos", middleware.ActionDelete), empenhosH.Excluir)
		}

		financeiro := v1.Group("/financeiro")
		{
			financeiro.GET("/contas-recebidas", middleware.RequirePermission("financeiro", middleware.ActionView), financeiroH.ContasRecebidas)
			financeiro.POST("/status-pagamento", middleware.RequirePermission("financeiro", middleware.ActionEdit), financeiroH.AtualizarStatus)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("/vendas-cliente/:uasg", middleware.RequirePermission("vendas", middleware.ActionView), relatoriosH.VendasCliente)
			relatorios.GET("/estoque", middleware.RequirePermission("produtos", middleware.ActionView), relatoriosH.Estoque)
			relatorios.GET("/dashboard", middleware.RequirePermission("vendas", middleware.ActionView), relatoriosH.Dashboard)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
