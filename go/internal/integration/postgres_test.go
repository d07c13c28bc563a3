package integration_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var migrations = []string{
	"01_groups.up.sql",
	"02_participants.up.sql",
	"03_menu_items.up.sql",
	"04_cart_items.up.sql",
	"05_change_notify.up.sql",
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	scripts := make([]string, 0, len(migrations))
	for _, m := range migrations {
		scripts = append(scripts, filepath.Join("..", "..", "migrations", m))
	}

	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("grouporder"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(scripts...),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}
