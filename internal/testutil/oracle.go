package testutil

import (
	"context"
	"time"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/targets"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	OracleImage    = "docker.io/gvenzl/oracle-free:23-slim-faststart"
	OraclePassword = "orawatch"
	OracleService  = "FREEPDB1"
)

var TestContext = log.WithLogger(context.Background(), log.NewNoopLogger())

// SetupOracleContainer starts Oracle Free and returns a target pointing to its pluggable database
func SetupOracleContainer() (testcontainers.Container, targets.Config, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        OracleImage,
		ExposedPorts: []string{"1521/tcp"},
		Env:          map[string]string{"ORACLE_PASSWORD": OraclePassword},
		WaitingFor: wait.ForLog("DATABASE IS READY TO USE!").
			WithStartupTimeout(5 * time.Minute),
	}
	c, err := testcontainers.GenericContainer(TestContext, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	tearDown := func() {
		if c != nil {
			_ = c.Terminate(TestContext)
		}
	}
	if err != nil {
		return c, targets.Config{}, tearDown, err
	}
	host, err := c.Host(TestContext)
	if err != nil {
		return c, targets.Config{}, tearDown, err
	}
	port, err := c.MappedPort(TestContext, "1521/tcp")
	if err != nil {
		return c, targets.Config{}, tearDown, err
	}
	cfg := targets.Config{
		Name:        "free",
		Host:        host,
		Port:        uint16(port.Int()),
		Auth:        targets.Authentication{Username: "system", Password: OraclePassword},
		ServiceName: OracleService,
	}
	return c, cfg, tearDown, nil
}
