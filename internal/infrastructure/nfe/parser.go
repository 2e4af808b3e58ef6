// Package nfe lê o XML de NF-e (modelo 55, procNFe ou NFe avulsa) e extrai
// o recorte necessário para a entrada de estoque: chave, emitente e itens.
package nfe

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appnfe "github.com/ldonato/almoxarifado-api/internal/application/nfe"
	"github.com/ldonato/almoxarifado-api/internal/domain"
)

var _ appnfe.Parser = (*EtreeParser)(nil)

// EtreeParser implementa nfe.Parser com beevik/etree.
type EtreeParser struct{}

// NewEtreeParser constrói o parser.
func NewEtreeParser() *EtreeParser {
	return &EtreeParser{}
}

// Parse extrai chave, emitente e itens da NF-e. O XML pode ser o nfeProc
// completo (nota autorizada) ou apenas o elemento NFe.
func (p *EtreeParser) Parse(xml []byte) (*appnfe.NotaFiscal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xml); err != nil {
		return nil, fmt.Errorf("%w: XML malformado: %v", domain.ErrEntradaInvalida, err)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, fmt.Errorf("%w: elemento infNFe ausente", domain.ErrEntradaInvalida)
	}

	chave := strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), "NFe")
	if len(chave) != 44 {
		return nil, fmt.Errorf("%w: chave de acesso inválida: %q", domain.ErrEntradaInvalida, chave)
	}

	emitente := textoDe(infNFe, "emit/xNome")
	if emitente == "" {
		return nil, fmt.Errorf("%w: emitente (emit/xNome) ausente", domain.ErrEntradaInvalida)
	}

	dets := infNFe.FindElements("det")
	if len(dets) == 0 {
		return nil, fmt.Errorf("%w: NF-e sem itens (det)", domain.ErrEntradaInvalida)
	}

	nota := &appnfe.NotaFiscal{
		Chave:    chave,
		Emitente: emitente,
		Itens:    make([]appnfe.ItemNota, 0, len(dets)),
	}
	for _, det := range dets {
		item, err := lerItem(det)
		if err != nil {
			return nil, err
		}
		nota.Itens = append(nota.Itens, *item)
	}
	return nota, nil
}

// lerItem extrai um det/prod. A quantidade comercial precisa ser inteira:
// o estoque do almoxarifado é contado em unidades.
func lerItem(det *etree.Element) (*appnfe.ItemNota, error) {
	nItem := det.SelectAttrValue("nItem", "?")

	codigo := textoDe(det, "prod/cProd")
	descricao := textoDe(det, "prod/xProd")
	if codigo == "" || descricao == "" {
		return nil, fmt.Errorf("%w: item %s sem cProd/xProd", domain.ErrEntradaInvalida, nItem)
	}

	qCom := textoDe(det, "prod/qCom")
	qtd, err := decimal.NewFromString(qCom)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s com qCom inválido: %q", domain.ErrEntradaInvalida, nItem, qCom)
	}
	if !qtd.IsInteger() || !qtd.IsPositive() {
		return nil, fmt.Errorf("%w: item %s exige quantidade inteira positiva, veio %s", domain.ErrEntradaInvalida, nItem, qtd)
	}

	return &appnfe.ItemNota{
		CodigoProduto: codigo,
		Descricao:     descricao,
		Quantidade:    qtd.IntPart(),
		ValorUnitario: textoDe(det, "prod/vUnCom"),
	}, nil
}

func textoDe(el *etree.Element, path string) string {
	child := el.FindElement(path)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
