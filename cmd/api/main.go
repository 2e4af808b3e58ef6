package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ldonato/almoxarifado-api/internal/application/aprovacao"
	"github.com/ldonato/almoxarifado-api/internal/application/auth"
	"github.com/ldonato/almoxarifado-api/internal/application/devolucao"
	"github.com/ldonato/almoxarifado-api/internal/application/estoque"
	appnfe "github.com/ldonato/almoxarifado-api/internal/application/nfe"
	approm "github.com/ldonato/almoxarifado-api/internal/application/romaneio"
	"github.com/ldonato/almoxarifado-api/internal/application/usecase"
	infranfe "github.com/ldonato/almoxarifado-api/internal/infrastructure/nfe"
	infrapdf "github.com/ldonato/almoxarifado-api/internal/infrastructure/pdf"
	"github.com/ldonato/almoxarifado-api/internal/infrastructure/postgres"
	httpRouter "github.com/ldonato/almoxarifado-api/internal/interfaces/http"
	"github.com/ldonato/almoxarifado-api/pkg/config"
	"github.com/ldonato/almoxarifado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	centroCustoRepo := postgres.NewCentroCustoRepository(pool)
	funcionarioRepo := postgres.NewFuncionarioRepository(pool)
	romaneioRepo := postgres.NewRomaneioRepository(pool)
	movRepo := postgres.NewMovimentacaoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validador := estoque.NewValidador(materialRepo)
	aplicador := estoque.NewAplicador()
	consulta := estoque.NewConsulta(movRepo)

	materialUC := usecase.NewMaterialUseCase(materialRepo, centroCustoRepo)
	centroCustoUC := usecase.NewCentroCustoUseCase(centroCustoRepo)
	funcionarioUC := usecase.NewFuncionarioUseCase(funcionarioRepo)

	romaneioUC := approm.NewUseCase(romaneioRepo, materialRepo, centroCustoRepo, funcionarioRepo)
	aprovacaoUC := aprovacao.NewUseCase(txRunner, romaneioRepo, validador, aplicador)
	devolucaoUC := devolucao.NewUseCase(romaneioRepo)

	// PDF: via impressa do romaneio
	pdfGenerator := infrapdf.NewMarotoRomaneioGenerator()
	pdfUC := approm.NewPDFUseCase(romaneioRepo, materialRepo, centroCustoRepo, funcionarioRepo, pdfGenerator)

	// NF-e: entrada de estoque a partir do XML do fornecedor
	nfeParser := infranfe.NewEtreeParser()
	nfeImportUC := appnfe.NewImportUseCase(txRunner, materialRepo, nfeParser, aplicador)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almoxarifado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MaterialUC:    materialUC,
		CentroCustoUC: centroCustoUC,
		FuncionarioUC: funcionarioUC,
		RomaneioUC:    romaneioUC,
		AprovacaoUC:   aprovacaoUC,
		DevolucaoUC:   devolucaoUC,
		PDFUC:         pdfUC,
		Validador:     validador,
		Consulta:      consulta,
		NFeImportUC:   nfeImportUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando aplicação")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown do servidor HTTP")
	}
}
