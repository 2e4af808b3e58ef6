package repository

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// CentroCustoRepository define o porto de persistência para centros de custo.
type CentroCustoRepository interface {
	Create(cc *entity.CentroCusto) error
	GetByID(id string) (*entity.CentroCusto, error)
	List(apenasAtivos bool, limit, offset int) ([]*entity.CentroCusto, error)
	Update(cc *entity.CentroCusto) error
}
