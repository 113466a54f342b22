package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

func TestNewPoolConfig_TimeoutsDeSesion(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL:      "postgres://u:p@localhost:5432/buen_sabor?sslmode=disable",
		MaxConns:         10,
		MinConns:         40,
		LockTimeout:      750 * time.Millisecond,
		StatementTimeout: 15 * time.Second,
	}
	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(10), pc.MinConns, "MinConns no supera MaxConns")
	params := pc.ConnConfig.RuntimeParams
	assert.Equal(t, "750", params["lock_timeout"])
	assert.Equal(t, "15000", params["statement_timeout"])
	assert.Equal(t, applicationName, params["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_Defaults(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{Host: "db", Port: 5432, User: "u", DBName: "x", SSLMode: "disable"})
	require.NoError(t, err)

	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
	_, ok := pc.ConnConfig.RuntimeParams["lock_timeout"]
	assert.False(t, ok, "sin LockTimeout se respeta el valor del servidor")
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestPgMillis(t *testing.T) {
	assert.Equal(t, "3000", pgMillis(3*time.Second))
	assert.Equal(t, "1", pgMillis(200*time.Microsecond))
}
