package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado         = errors.New("recurso não encontrado")
	ErrMaterialNaoEncontrado = errors.New("material não encontrado")
	ErrEntradaInvalida       = errors.New("entrada inválida")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrNaoAutorizado         = errors.New("não autorizado")
	ErrEmailJaCadastrado     = errors.New("o e-mail já está cadastrado")
	ErrTransicaoInvalida     = errors.New("transição de status inválida")
	ErrJaFinalizado          = errors.New("devolução já finalizada")
	ErrEstoqueInsuficiente   = errors.New("estoque insuficiente")
	ErrFalhaPersistencia     = errors.New("falha de persistência")
)
