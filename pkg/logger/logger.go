// Package logger configura o zerolog do serviço.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger, vindas da configuração do serviço.
type Config struct {
	Env   string // development -> console legível; qualquer outro -> JSON
	Level string // debug, info, warn, error
}

// Logger embute o zerolog; os call sites usam a API dele diretamente
// (Info(), Error(), With()).
type Logger struct {
	zerolog.Logger
}

// New cria o logger do serviço com o campo servico fixo em todo lançamento.
// Em development a saída é o console legível; caso contrário, JSON por linha.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(w).
		Level(nivelDe(cfg.Level)).
		With().
		Timestamp().
		Str("servico", "almoxarifado-api").
		Logger()

	// Bibliotecas que usam o logger global do zerolog saem pelo mesmo destino.
	log.Logger = zl

	return &Logger{Logger: zl}
}

// nivelDe converte o nível textual da configuração; desconhecido cai em info.
func nivelDe(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
