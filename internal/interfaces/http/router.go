package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ldonato/almoxarifado-api/internal/application/aprovacao"
	"github.com/ldonato/almoxarifado-api/internal/application/auth"
	"github.com/ldonato/almoxarifado-api/internal/application/devolucao"
	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	"github.com/ldonato/almoxarifado-api/internal/application/nfe"
	"github.com/ldonato/almoxarifado-api/internal/application/romaneio"
	"github.com/ldonato/almoxarifado-api/internal/application/usecase"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	MaterialUC    *usecase.MaterialUseCase
	CentroCustoUC *usecase.CentroCustoUseCase
	FuncionarioUC *usecase.FuncionarioUseCase
	RomaneioUC    *romaneio.UseCase
	AprovacaoUC   *aprovacao.UseCase
	DevolucaoUC   *devolucao.UseCase
	PDFUC         *romaneio.PDFUseCase
	Validador     *estoque.Validador
	Consulta      *estoque.Consulta
	NFeImportUC   *nfe.ImportUseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mutações de cadastro e aprovação exigem perfil de almoxarifado.
	gerencia := RequireRole(entity.RoleAdmin, entity.RoleAlmoxarife)

	// Materiais
	materiais := protected.Group("/materiais")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materiais.Post("/", gerencia, materialHandler.Create)
	materiais.Get("/", materialHandler.List)
	materiais.Get("/:id", materialHandler.GetByID)
	materiais.Put("/:id", gerencia, materialHandler.Update)

	// Centros de custo
	centros := protected.Group("/centros-custo")
	centroCustoHandler := NewCentroCustoHandler(deps.CentroCustoUC)
	centros.Post("/", gerencia, centroCustoHandler.Create)
	centros.Get("/", centroCustoHandler.List)
	centros.Get("/:id", centroCustoHandler.GetByID)

	// Funcionários
	funcionarios := protected.Group("/funcionarios")
	funcionarioHandler := NewFuncionarioHandler(deps.FuncionarioUC)
	funcionarios.Post("/", gerencia, funcionarioHandler.Create)
	funcionarios.Get("/", funcionarioHandler.List)
	funcionarios.Get("/:id", funcionarioHandler.GetByID)

	// Romaneios: qualquer usuário autenticado cria e consulta;
	// aprovar e cancelar só o almoxarifado.
	romaneios := protected.Group("/romaneios")
	romaneioHandler := NewRomaneioHandler(deps.RomaneioUC, deps.AprovacaoUC, deps.DevolucaoUC, deps.PDFUC)
	romaneios.Post("/", romaneioHandler.Create)
	romaneios.Get("/", romaneioHandler.List)
	romaneios.Get("/:id", romaneioHandler.GetByID)
	romaneios.Post("/:id/aprovar", gerencia, romaneioHandler.Aprovar)
	romaneios.Post("/:id/cancelar", gerencia, romaneioHandler.Cancelar)
	romaneios.Get("/:id/devolucao", romaneioHandler.Devolucao)
	romaneios.Get("/:id/pdf", romaneioHandler.PDF)

	// Estoque: validação e razão de movimentações
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.Validador, deps.Consulta)
	estoqueGroup.Post("/validar", estoqueHandler.Validar)
	estoqueGroup.Get("/materiais/:id/movimentacoes", estoqueHandler.MovimentacoesPorMaterial)
	estoqueGroup.Get("/romaneios/:id/movimentacoes", estoqueHandler.MovimentacoesPorRomaneio)

	// NF-e: entrada de estoque a partir do XML do fornecedor
	nfeGroup := protected.Group("/nfe")
	nfeHandler := NewNFeHandler(deps.NFeImportUC)
	nfeGroup.Post("/importar", gerencia, nfeHandler.Importar)
}
