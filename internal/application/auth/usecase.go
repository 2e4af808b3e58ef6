package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ldonato/almoxarifado-api/internal/application/dto"
	"github.com/ldonato/almoxarifado-api/internal/domain"
	"github.com/ldonato/almoxarifado-api/internal/domain/entity"
	"github.com/ldonato/almoxarifado-api/internal/domain/repository"
	"github.com/ldonato/almoxarifado-api/pkg/jwt"
)

// JWTConfig configuração para emissão de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: cadastro e login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register cria um usuário: hasheia a senha com bcrypt e persiste.
// Devolve ErrEmailJaCadastrado se o e-mail já existir.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: e-mail e senha são obrigatórios", domain.ErrEntradaInvalida)
	}
	existente, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar usuário: %v", domain.ErrFalhaPersistencia, err)
	}
	if existente != nil {
		return nil, domain.ErrEmailJaCadastrado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nome := in.Nome
	if nome == "" {
		nome = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSolicitante
	}
	u := &entity.Usuario{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Nome:      nome,
		SenhaHash: string(hash),
		Role:      role,
		CriadoEm:  time.Now(),
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, fmt.Errorf("%w: gravar usuário: %v", domain.ErrFalhaPersistencia, err)
	}
	return &dto.UserResponse{ID: u.ID, Email: u.Email, Nome: u.Nome, Role: u.Role}, nil
}

// Login valida as credenciais e emite um JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar usuário: %v", domain.ErrFalhaPersistencia, err)
	}
	if u == nil {
		return nil, domain.ErrNaoAutorizado
	}
	if bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(in.Password)) != nil {
		return nil, domain.ErrNaoAutorizado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: u.ID, Email: u.Email, Nome: u.Nome, Role: u.Role},
	}, nil
}
