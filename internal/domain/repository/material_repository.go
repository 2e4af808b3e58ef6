package repository

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// MaterialRepository define o porto de persistência para materiais.
// Quantidade e centro de custo são atualizados apenas dentro de transações
// do aplicador de movimentações.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCodigo(codigo string) (*entity.Material, error)
	List(busca string, apenasAtivos bool, limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	// GetForUpdate bloqueia a linha do material (SELECT FOR UPDATE) até o fim da transação.
	GetForUpdate(id string) (*entity.Material, error)
	UpdateQuantidade(id string, quantidade int64) error
	UpdateCentroCusto(id string, centroCustoID *string) error
}
