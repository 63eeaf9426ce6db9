// Package containers starts the postgres and redis servers the integration
// tests run against.
package containers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16.3-alpine"
	dbName        = "scoutlens"
	dbUser        = "scout"
	dbPassword    = "secret"

	schemaFile = "schema/schema.sql"
)

type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer starts postgres with the schema loaded.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(findSchema()),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		logrus.WithError(err).Fatal("error starting postgres container")
	}

	return &DBContainer{container: container}
}

func (c *DBContainer) Shutdown() {
	terminate(c.container, "postgres")
}

func (c *DBContainer) ConnectionString() string {
	// The container does not serve TLS.
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		logrus.WithError(err).Fatal("error getting postgres connection string")
	}
	return connStr
}

// findSchema walks up from the working directory, which is the directory of
// the package under test, until it finds the schema.
func findSchema() string {
	dir, err := os.Getwd()
	if err != nil {
		logrus.WithError(err).Fatal("error getting working directory")
	}
	for {
		p := filepath.Join(dir, schemaFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			logrus.Fatalf("%s not found above the working directory", schemaFile)
		}
		dir = parent
	}
}

func terminate(c testcontainers.Container, name string) {
	if err := c.Terminate(context.Background()); err != nil {
		logrus.WithError(err).Fatalf("error terminating %s container", name)
	}
}
