//go:build integration

package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/store"
)

// NewMySQL starts a MySQL 8 container and returns a migrated store on it.
func NewMySQL(t testing.TB) *store.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "secret",
				"MYSQL_DATABASE":      "storefront",
			},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	cfg := &config.DBConfig{
		Driver:       string(store.MySQL),
		DSN:          fmt.Sprintf("root:secret@tcp(%s)/storefront", endpoint),
		MaxOpenConns: 20,
	}

	var db *store.DB
	require.Eventually(t, func() bool {
		db, err = store.Open(ctx, cfg)
		return err == nil
	}, 30*time.Second, time.Second, "mysql never accepted connections")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}
