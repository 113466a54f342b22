package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

const (
	defaultMaxConns = 25
	applicationName = "buen-sabor-api"
)

// NewPool crea el pool de conexiones y verifica que la base responda.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// newPoolConfig arma la configuración del pool para el motor de pedidos.
//
// Cada reserva toma SELECT ... FOR UPDATE sobre las filas de sus insumos y las retiene hasta el
// commit, así que el tamaño del pool acota cuántas reservas compiten a la vez. lock_timeout corta
// la espera detrás de otra reserva (el caller recibe ErrConflict y puede reintentar) y
// statement_timeout acota cualquier consulta. Ambos viajan como parámetros de arranque de la sesión.
func newPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = min(cfg.MinConns, poolConfig.MaxConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	params := poolConfig.ConnConfig.RuntimeParams
	if params["application_name"] == "" {
		params["application_name"] = applicationName
	}
	if cfg.LockTimeout > 0 {
		params["lock_timeout"] = pgMillis(cfg.LockTimeout)
	}
	if cfg.StatementTimeout > 0 {
		params["statement_timeout"] = pgMillis(cfg.StatementTimeout)
	}

	// NUMERIC <-> decimal.Decimal para stock, precios y costos.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// pgMillis formatea d en milisegundos, la unidad por defecto de los timeouts de Postgres.
func pgMillis(d time.Duration) string {
	ms := d.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return strconv.FormatInt(ms, 10)
}
