// Package pdf implementa a via impressa do romaneio com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo + N° Romaneio  │  Data + Status               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CENTROS DE CUSTO: origem → destino                         │
//	│  RESPONSÁVEL: funcionário ou nome livre                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Material | N° Série | Qtd                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVAÇÕES                                                │
//	│  ASSINATURAS: entregue por / recebido por                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	approm "github.com/ldonato/almoxarifado-api/internal/application/romaneio"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos por tipo de romaneio.
var tituloPorTipo = map[string]string{
	entity.TipoRetirada:      "ROMANEIO DE RETIRADA",
	entity.TipoDevolucao:     "ROMANEIO DE DEVOLUÇÃO",
	entity.TipoTransferencia: "ROMANEIO DE TRANSFERÊNCIA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRomaneioGenerator implementa romaneio.PDFGenerator usando Maroto v2.
type MarotoRomaneioGenerator struct{}

// NewMarotoRomaneioGenerator constrói o gerador.
func NewMarotoRomaneioGenerator() *MarotoRomaneioGenerator {
	return &MarotoRomaneioGenerator{}
}

// GerarRomaneioPDF gera o PDF e devolve seus bytes.
func (g *MarotoRomaneioGenerator) GerarRomaneioPDF(dados approm.DadosPDF) ([]byte, error) {
	rom := dados.Romaneio

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Romaneio %06d", rom.Numero), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rom))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(centrosRow(dados))
	m.AddRows(responsavelRow(dados))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(rom, dados.Materiais) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if rom.Observacoes != "" {
		m.AddRows(observacoesRow(rom.Observacoes))
	}
	m.AddRows(line.NewRow(6))
	m.AddRows(assinaturasRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: tipo + número (esq) e data + status (dir).
func headerRow(rom *entity.Romaneio) core.Row {
	titulo := tituloPorTipo[rom.Tipo]
	data := rom.Data.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", rom.Numero), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Data: "+data, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Status: "+rom.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// centrosRow: centro de custo de origem e de destino.
func centrosRow(dados approm.DadosPDF) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CENTROS DE CUSTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Origem: %s   →   Destino: %s",
				nomeCentro(dados.Origem), nomeCentro(dados.Destino),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// responsavelRow: funcionário cadastrado ou nome livre.
func responsavelRow(dados approm.DadosPDF) core.Row {
	rom := dados.Romaneio
	responsavel := "—"
	switch {
	case dados.Funcionario != nil:
		responsavel = fmt.Sprintf("%s (matrícula %s)", dados.Funcionario.Nome, dados.Funcionario.Matricula)
	case rom.ResponsavelNome != nil:
		responsavel = *rom.ResponsavelNome
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("RESPONSÁVEL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(responsavel, props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 6, align.Left),
		h("N° Série", 2, align.Center),
		h("Qtd", 2, align.Right),
	)
}

// tableItemRows: uma linha por item do romaneio.
func tableItemRows(rom *entity.Romaneio, materiais map[string]*entity.Material) []core.Row {
	result := make([]core.Row, 0, len(rom.Itens))
	for _, item := range rom.Itens {
		codigo, nome := item.MaterialID, ""
		if mat, ok := materiais[item.MaterialID]; ok {
			codigo, nome = mat.Codigo, mat.Nome
		}
		serie := "—"
		if item.NumeroSerie != nil {
			serie = *item.NumeroSerie
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(codigo, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(nome, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(serie, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantidade), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// observacoesRow: texto livre do romaneio.
func observacoesRow(obs string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVAÇÕES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(obs, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// assinaturasRow: linhas de assinatura de entrega e recebimento.
func assinaturasRow() core.Row {
	assinatura := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center, Top: 1}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 6, Color: colorGray}),
		)
	}
	return row.New(14).Add(
		assinatura("Entregue por"),
		assinatura("Recebido por"),
	)
}

func nomeCentro(cc *entity.CentroCusto) string {
	if cc == nil {
		return "—"
	}
	return cc.Codigo + " - " + cc.Nome
}
