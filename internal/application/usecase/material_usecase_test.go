package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldonato/almoxarifado-api/internal/application/usecase"
)

// NormalizarBusca remove acentos, baixa a caixa e apara espaços: é o que
// garante que "Parafuso Sextavado" e "parafuso sextavado" casem na busca.
func TestNormalizarBusca(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"Parafuso Sextavado", "parafuso sextavado"},
		{"CONEXÃO GALVANIZADA", "conexao galvanizada"},
		{"  Lâmpada LED 9W  ", "lampada led 9w"},
		{"çÇáÁéÉíÍóÓúÚ", "ccaaeeiioouu"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, usecase.NormalizarBusca(c.entrada), "entrada: %q", c.entrada)
	}
}
