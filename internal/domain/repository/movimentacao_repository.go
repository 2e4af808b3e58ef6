package repository

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// MovimentacaoRepository define o porto de persistência do razão de estoque.
// O razão é append-only: não há Update nem Delete.
type MovimentacaoRepository interface {
	Create(mov *entity.Movimentacao) error
	ListByMaterial(materialID string, limit, offset int) ([]*entity.Movimentacao, error)
	ListByRomaneio(romaneioID string) ([]*entity.Movimentacao, error)
}
