package nfe_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/infrastructure/nfe"
)

const chaveTeste = "35200714200166000187550010000000046550000046"

// xmlNFe monta um nfeProc mínimo com os itens informados (det/prod).
func xmlNFe(itens ...string) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">`)
	sb.WriteString(`<NFe><infNFe Id="NFe` + chaveTeste + `" versao="4.00">`)
	sb.WriteString(`<emit><CNPJ>14200166000187</CNPJ><xNome>Fornecedor Industrial LTDA</xNome></emit>`)
	for _, it := range itens {
		sb.WriteString(it)
	}
	sb.WriteString(`</infNFe></NFe></nfeProc>`)
	return []byte(sb.String())
}

func det(nItem, cProd, xProd, qCom, vUnCom string) string {
	return `<det nItem="` + nItem + `"><prod>` +
		`<cProd>` + cProd + `</cProd><xProd>` + xProd + `</xProd>` +
		`<qCom>` + qCom + `</qCom><vUnCom>` + vUnCom + `</vUnCom>` +
		`</prod></det>`
}

// ──────────────────────────────────────────────────────────────────────────────
// Parse
// ──────────────────────────────────────────────────────────────────────────────

// NF-e bem formada: chave sem o prefixo "NFe", emitente e itens extraídos.
func TestParse_NotaCompleta(t *testing.T) {
	p := nfe.NewEtreeParser()
	xml := xmlNFe(
		det("1", "PAR-M8", "Parafuso Sextavado M8", "100.0000", "0.4500"),
		det("2", "ARR-M8", "Arruela Lisa M8", "200.0000", "0.1200"),
	)

	nota, err := p.Parse(xml)

	require.NoError(t, err)
	assert.Equal(t, chaveTeste, nota.Chave, "chave sem o prefixo NFe")
	assert.Equal(t, "Fornecedor Industrial LTDA", nota.Emitente)
	require.Len(t, nota.Itens, 2)

	assert.Equal(t, "PAR-M8", nota.Itens[0].CodigoProduto)
	assert.Equal(t, "Parafuso Sextavado M8", nota.Itens[0].Descricao)
	assert.Equal(t, int64(100), nota.Itens[0].Quantidade, "qCom decimal integral vira int64")
	assert.Equal(t, "0.4500", nota.Itens[0].ValorUnitario)
	assert.Equal(t, int64(200), nota.Itens[1].Quantidade)
}

// O elemento NFe avulso (sem o envelope nfeProc) também é aceito.
func TestParse_NFeSemEnvelope(t *testing.T) {
	p := nfe.NewEtreeParser()
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="NFe` + chaveTeste + `">` +
		`<emit><xNome>Fornecedor</xNome></emit>` +
		det("1", "P1", "Produto Um", "5", "1.00") +
		`</infNFe></NFe>`

	nota, err := p.Parse([]byte(xml))

	require.NoError(t, err)
	assert.Equal(t, chaveTeste, nota.Chave)
	require.Len(t, nota.Itens, 1)
	assert.Equal(t, int64(5), nota.Itens[0].Quantidade)
}

// Quantidade fracionária: o estoque é contado em unidades, então é rejeitada.
func TestParse_QuantidadeFracionariaRejeitada(t *testing.T) {
	p := nfe.NewEtreeParser()
	xml := xmlNFe(det("1", "CAB-2X", "Cabo Flexível", "12.5000", "3.9000"))

	_, err := p.Parse(xml)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	assert.Contains(t, err.Error(), "inteira")
}

// XML malformado.
func TestParse_XMLMalformado(t *testing.T) {
	p := nfe.NewEtreeParser()

	_, err := p.Parse([]byte(`<nfeProc><NFe>`))

	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// Sem infNFe não há nota.
func TestParse_SemInfNFe(t *testing.T) {
	p := nfe.NewEtreeParser()

	_, err := p.Parse([]byte(`<outro><coisa/></outro>`))

	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// Chave com tamanho errado é rejeitada.
func TestParse_ChaveInvalida(t *testing.T) {
	p := nfe.NewEtreeParser()
	xml := `<NFe><infNFe Id="NFe123"><emit><xNome>F</xNome></emit>` +
		det("1", "P1", "Produto", "1", "1.00") + `</infNFe></NFe>`

	_, err := p.Parse([]byte(xml))

	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// Nota sem itens de produto.
func TestParse_SemItens(t *testing.T) {
	p := nfe.NewEtreeParser()

	_, err := p.Parse(xmlNFe())

	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
