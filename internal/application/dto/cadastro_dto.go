package dto

// CriarCentroCustoRequest corpo para POST /api/centros-custo.
type CriarCentroCustoRequest struct {
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
}

// CentroCustoResponse representação de centro de custo em respostas.
type CentroCustoResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
	Ativo  bool   `json:"ativo"`
}

// CriarFuncionarioRequest corpo para POST /api/funcionarios.
type CriarFuncionarioRequest struct {
	Matricula string `json:"matricula"`
	Nome      string `json:"nome"`
	Cargo     string `json:"cargo,omitempty"`
}

// FuncionarioResponse representação de funcionário em respostas.
type FuncionarioResponse struct {
	ID        string `json:"id"`
	Matricula string `json:"matricula"`
	Nome      string `json:"nome"`
	Cargo     string `json:"cargo,omitempty"`
	Ativo     bool   `json:"ativo"`
}
