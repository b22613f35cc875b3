//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"barbershop-booking/cmd/bootstrap"
	"barbershop-booking/cmd/bootstrap/components"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/pkg/config"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = "5432/tcp"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
)

type endpoint struct {
	Host string
	Port nat.Port
}

func adminDSN(ep endpoint) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, ep.Host, ep.Port.Port())
}

// SharedSuite boots one postgres container per test binary and gives every
// suite its own database, migrated and wired into the full fx graph.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ep := postgresEndpoint(t)
	dbCfg := createDatabase(t, ep)

	pool, closePool, err := db.Connect(context.Background(), dbCfg)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(closePool)
	require.NoError(t, applyMigrations(pool), "apply migrations")

	s.DB = pool
	s.Router, s.Config = startApp(t, pool, dbCfg)
}

// SetupSubTest gives each subtest empty tables.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database state")
}

func postgresEndpoint(t *testing.T) endpoint {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{pgPort},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				// Durability is irrelevant for throwaway data.
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return adminDSN(endpoint{Host: host, Port: port})
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "barbershop-e2e"},
			},
			Started: true,
		})
		require.NoError(t, err, "start postgres container")
		pgContainer = c
	})
	require.NotNil(t, pgContainer, "postgres container unavailable")

	ctx := context.Background()
	port, err := pgContainer.MappedPort(ctx, nat.Port(pgPort))
	require.NoError(t, err, "resolve postgres port")
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err, "resolve postgres host")
	return endpoint{Host: host, Port: port}
}

// createDatabase makes a uniquely named database and drops it when the suite ends.
func createDatabase(t *testing.T, ep endpoint) config.DBConfig {
	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, adminDSN(ep))
	require.NoError(t, err, "connect as admin")
	defer admin.Close()

	// CREATE DATABASE can race with template1 use under parallel packages.
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("create database failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(ep))
		if err != nil {
			slog.Warn("drop database skipped", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err)
		}
	})

	return config.DBConfig{
		Host:     ep.Host,
		Port:     ep.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// applyMigrations runs every file in migrations/ in name order, the same
// order atlas applies them in.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return errs.Wrapf(err, "read %s", f)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrapf(err, "execute %s", filepath.Base(f))
		}
	}
	return nil
}

// migrationsDir walks up from the package directory `go test` runs in.
func migrationsDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errs.Wrap(err, "working directory")
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		if filepath.Dir(dir) == dir {
			return "", errs.Newf("no go.mod above %s", wd)
		}
	}
}

func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) (*gin.Engine, config.Config) {
	var (
		router *gin.Engine
		cfg    config.Config
	)

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config {
				c := config.NewTestConfig()
				c.DB = dbCfg
				return c
			},
			func() *gin.Engine { return gin.New() },
			bootstrap.NewBookingLocation,
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start fx app")
	require.NotNil(t, router, "router not populated")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop fx app", "error", err)
		}
	})
	return router, cfg
}
