package repository

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// RomaneioRepository define o porto de persistência para romaneios e seus itens.
type RomaneioRepository interface {
	// Create persiste o romaneio com seus itens e atribui o número sequencial.
	Create(romaneio *entity.Romaneio) error
	GetByID(id string) (*entity.Romaneio, error)
	// GetForUpdate bloqueia a linha do romaneio (SELECT FOR UPDATE) até o fim da transação.
	GetForUpdate(id string) (*entity.Romaneio, error)
	UpdateStatus(id, status string, usuarioID string) error
	// ListDevolucoesAprovadasPorOrigem devolve as devoluções APROVADAS que referenciam a retirada.
	ListDevolucoesAprovadasPorOrigem(retiradaID string) ([]*entity.Romaneio, error)
	List(tipo, status string, limit, offset int) ([]*entity.Romaneio, error)
}
