package nfe

// ItemNota é uma linha de produto da NF-e (det/prod).
type ItemNota struct {
	CodigoProduto string // cProd
	Descricao     string // xProd
	Quantidade    int64  // qCom, exigida integral
	ValorUnitario string // vUnCom, decimal como texto
}

// NotaFiscal é o recorte da NF-e que interessa à importação de estoque.
type NotaFiscal struct {
	Chave    string // Id de infNFe, sem o prefixo "NFe"
	Emitente string // emit/xNome
	Itens    []ItemNota
}

// Parser é o porto de leitura do XML da NF-e.
type Parser interface {
	Parse(xml []byte) (*NotaFiscal, error)
}
