package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.Orders.PickupDiscount.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, 10, cfg.Orders.DeliveryOverheadMinutes)
	assert.Equal(t, "zero", cfg.Orders.ReservePolicy)
	assert.Equal(t, "cocinero", cfg.Orders.CookRole)
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR Redis queda desactivado")
	assert.Equal(t, "order_exchange", cfg.RabbitMQ.Exchange)
	assert.Equal(t, 3*time.Second, cfg.DB.LockTimeout)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("ORDERS_PICKUP_DISCOUNT", "0.15")
	v.Set("ORDERS_DELIVERY_OVERHEAD_MINUTES", "20")
	v.Set("ORDERS_RESERVE_POLICY", "minimum")
	v.Set("REDIS_ADDR", "redis:6379")
	v.Set("DB_MAX_CONNS", "8")
	v.Set("DB_LOCK_TIMEOUT", "750ms")
	v.Set("DB_STATEMENT_TIMEOUT", "5000")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.Orders.PickupDiscount.Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, 20, cfg.Orders.DeliveryOverheadMinutes)
	assert.Equal(t, "minimum", cfg.Orders.ReservePolicy)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.Equal(t, 750*time.Millisecond, cfg.DB.LockTimeout)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout, "un entero se lee en milisegundos")
}

func TestFromViper_TimeoutInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_LOCK_TIMEOUT", "pronto")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DescuentoInvalido(t *testing.T) {
	for _, val := range []string{"abc", "-0.1", "1"} {
		v := viper.New()
		v.Set("ORDERS_PICKUP_DISCOUNT", val)
		_, err := fromViper(v)
		assert.Error(t, err, "valor %q", val)
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "buen_sabor", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/buen_sabor?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
