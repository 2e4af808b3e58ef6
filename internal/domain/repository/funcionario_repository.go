package repository

import "github.com/ldonato/almoxarifado-api/internal/domain/entity"

// FuncionarioRepository define o porto de persistência para funcionários.
type FuncionarioRepository interface {
	Create(f *entity.Funcionario) error
	GetByID(id string) (*entity.Funcionario, error)
	List(apenasAtivos bool, limit, offset int) ([]*entity.Funcionario, error)
	Update(f *entity.Funcionario) error
}
