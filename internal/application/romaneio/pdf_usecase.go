package romaneio

import (
	"context"
	"fmt"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
)

// DadosPDF é tudo que o gerador precisa para montar a via impressa.
type DadosPDF struct {
	Romaneio    *entity.Romaneio
	Materiais   map[string]*entity.Material // por ID, para código/nome nas linhas
	Origem      *entity.CentroCusto
	Destino     *entity.CentroCusto
	Funcionario *entity.Funcionario // nil quando o responsável é nome livre
}

// PDFGenerator é o porto de geração da via impressa do romaneio.
type PDFGenerator interface {
	GerarRomaneioPDF(dados DadosPDF) ([]byte, error)
}

// PDFUseCase monta os dados e delega a renderização ao gerador.
type PDFUseCase struct {
	romaneioRepo    repository.RomaneioRepository
	materialRepo    repository.MaterialRepository
	centroCustoRepo repository.CentroCustoRepository
	funcionarioRepo repository.FuncionarioRepository
	generator       PDFGenerator
}

// NewPDFUseCase constrói o caso de uso de PDF.
func NewPDFUseCase(
	romaneioRepo repository.RomaneioRepository,
	materialRepo repository.MaterialRepository,
	centroCustoRepo repository.CentroCustoRepository,
	funcionarioRepo repository.FuncionarioRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		romaneioRepo:    romaneioRepo,
		materialRepo:    materialRepo,
		centroCustoRepo: centroCustoRepo,
		funcionarioRepo: funcionarioRepo,
		generator:       generator,
	}
}

// Gerar devolve os bytes do PDF e o nome de arquivo sugerido.
func (uc *PDFUseCase) Gerar(_ context.Context, romaneioID string) ([]byte, string, error) {
	rom, err := uc.romaneioRepo.GetByID(romaneioID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: carregar romaneio: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom == nil {
		return nil, "", fmt.Errorf("%w: romaneio %s", domain.ErrNaoEncontrado, romaneioID)
	}

	dados := DadosPDF{
		Romaneio:  rom,
		Materiais: make(map[string]*entity.Material, len(rom.Itens)),
	}
	for _, item := range rom.Itens {
		if _, ok := dados.Materiais[item.MaterialID]; ok {
			continue
		}
		mat, err := uc.materialRepo.GetByID(item.MaterialID)
		if err != nil {
			return nil, "", fmt.Errorf("%w: consultar material: %v", domain.ErrFalhaPersistencia, err)
		}
		if mat != nil {
			dados.Materiais[item.MaterialID] = mat
		}
	}
	if dados.Origem, err = uc.centroCustoRepo.GetByID(rom.CentroCustoOrigemID); err != nil {
		return nil, "", fmt.Errorf("%w: consultar centro de custo: %v", domain.ErrFalhaPersistencia, err)
	}
	if dados.Destino, err = uc.centroCustoRepo.GetByID(rom.CentroCustoDestinoID); err != nil {
		return nil, "", fmt.Errorf("%w: consultar centro de custo: %v", domain.ErrFalhaPersistencia, err)
	}
	if rom.FuncionarioID != nil {
		if dados.Funcionario, err = uc.funcionarioRepo.GetByID(*rom.FuncionarioID); err != nil {
			return nil, "", fmt.Errorf("%w: consultar funcionário: %v", domain.ErrFalhaPersistencia, err)
		}
	}

	pdf, err := uc.generator.GerarRomaneioPDF(dados)
	if err != nil {
		return nil, "", fmt.Errorf("gerar PDF do romaneio %d: %w", rom.Numero, err)
	}
	nome := fmt.Sprintf("romaneio-%06d.pdf", rom.Numero)
	return pdf, nome, nil
}
