// Package romaneio contém regras de negócio puras sobre romaneios
// (serviços de domínio sem efeitos colaterais).
package romaneio

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// Situações de devolução derivadas de uma retirada.
const (
	SituacaoNaoDevolvido          = "NAO_DEVOLVIDO"
	SituacaoParcialmenteDevolvido = "PARCIALMENTE_DEVOLVIDO"
	SituacaoTotalmenteDevolvido   = "TOTALMENTE_DEVOLVIDO"
)

// ItemDevolucao é o detalhamento por material do status de devolução.
type ItemDevolucao struct {
	MaterialID          string  `json:"material_id"`
	QuantidadeOriginal  int64   `json:"quantidade_original"`
	QuantidadeDevolvida int64   `json:"quantidade_devolvida"`
	Percentual          float64 `json:"percentual"` // limitado a 100
}

// StatusDevolucao é o agregado derivado de uma retirada e suas devoluções
// aprovadas. Nunca é persistido: recalculado a cada consulta.
type StatusDevolucao struct {
	RetiradaID     string          `json:"retirada_id"`
	Situacao       string          `json:"situacao"`
	TotalOriginal  int64           `json:"total_original"`
	TotalDevolvido int64           `json:"total_devolvido"`
	Percentual     float64         `json:"percentual"` // limitado a 100
	Itens          []ItemDevolucao `json:"itens"`
}

// CalcularStatusDevolucao soma, por material da retirada, as quantidades
// devolvidas nas devoluções informadas (o chamador filtra por status APROVADO)
// e deriva a situação geral. Função pura: não consulta nem grava nada.
func CalcularStatusDevolucao(retirada *entity.Romaneio, devolucoes []*entity.Romaneio) *StatusDevolucao {
	devolvidoPorMaterial := make(map[string]int64)
	for _, dev := range devolucoes {
		for _, item := range dev.Itens {
			devolvidoPorMaterial[item.MaterialID] += item.Quantidade
		}
	}

	status := &StatusDevolucao{
		RetiradaID: retirada.ID,
		Itens:      make([]ItemDevolucao, 0, len(retirada.Itens)),
	}
	// Itens na ordem definida pelo documento de retirada.
	for _, item := range retirada.Itens {
		devolvido := devolvidoPorMaterial[item.MaterialID]
		status.Itens = append(status.Itens, ItemDevolucao{
			MaterialID:          item.MaterialID,
			QuantidadeOriginal:  item.Quantidade,
			QuantidadeDevolvida: devolvido,
			Percentual:          percentual(devolvido, item.Quantidade),
		})
		status.TotalOriginal += item.Quantidade
		status.TotalDevolvido += devolvido
	}

	status.Percentual = percentual(status.TotalDevolvido, status.TotalOriginal)
	switch {
	case status.TotalDevolvido == 0:
		status.Situacao = SituacaoNaoDevolvido
	case status.TotalDevolvido >= status.TotalOriginal:
		status.Situacao = SituacaoTotalmenteDevolvido
	default:
		status.Situacao = SituacaoParcialmenteDevolvido
	}
	return status
}

// percentual devolve 100*devolvido/original limitado a 100 (0 se original for 0).
func percentual(devolvido, original int64) float64 {
	if original <= 0 {
		return 0
	}
	p := float64(devolvido) / float64(original) * 100
	if p > 100 {
		return 100
	}
	return p
}
