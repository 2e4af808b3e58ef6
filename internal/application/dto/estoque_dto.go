package dto

// ValidarEstoqueItemRequest item no corpo de validação de estoque.
type ValidarEstoqueItemRequest struct {
	MaterialID string `json:"material_id"`
	Quantidade int64  `json:"quantidade"`
}

// ValidarEstoqueRequest corpo para POST /api/estoque/validar.
type ValidarEstoqueRequest struct {
	Itens []ValidarEstoqueItemRequest `json:"itens"`
}

// FalhaValidacaoDTO item reprovado na validação de estoque.
type FalhaValidacaoDTO struct {
	MaterialID string `json:"material_id"`
	Codigo     string `json:"codigo,omitempty"`
	Nome       string `json:"nome,omitempty"`
	Motivo     string `json:"motivo"`
	Solicitada int64  `json:"solicitada"`
	Disponivel int64  `json:"disponivel"`
	Faltante   int64  `json:"faltante"`
}

// ValidarEstoqueResponse resultado da validação de estoque.
type ValidarEstoqueResponse struct {
	Valido      bool                `json:"valido"`
	Mensagem    string              `json:"mensagem,omitempty"`
	Disponiveis map[string]int64    `json:"disponiveis,omitempty"`
	Falhas      []FalhaValidacaoDTO `json:"falhas,omitempty"`
}

// MovimentacaoResponse lançamento do razão de estoque em respostas.
type MovimentacaoResponse struct {
	ID                  string  `json:"id"`
	MaterialID          string  `json:"material_id"`
	Delta               int64   `json:"delta"`
	QuantidadeAnterior  int64   `json:"quantidade_anterior"`
	QuantidadePosterior int64   `json:"quantidade_posterior"`
	Motivo              string  `json:"motivo"`
	RomaneioID          *string `json:"romaneio_id,omitempty"`
	ReferenciaExterna   *string `json:"referencia_externa,omitempty"`
	UsuarioID           string  `json:"usuario_id"`
	CriadoEm            string  `json:"criado_em"`
}
