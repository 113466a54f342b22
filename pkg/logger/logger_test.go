package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "buen-sabor-api", Out: &buf})

	c := l.Component("ordering")
	c.Info().Str("order_id", "o-1").Msg("pedido creado")
	c.Debug().Msg("no debe salir")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "buen-sabor-api", ev["service"])
	assert.Equal(t, "ordering", ev["component"])
	assert.Equal(t, "o-1", ev["order_id"])
	assert.Equal(t, "pedido creado", ev["message"])
}
