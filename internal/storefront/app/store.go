package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/postgres"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
)

// OpenStore connects to the configured database. Migrations are not applied.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case "sqlite", "":
		s, err := sqlite.NewStore(sqliteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql":
		s, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

// sqliteDSN turns a bare file path into a DSN with a busy timeout and WAL.
func sqliteDSN(url string) string {
	if strings.HasPrefix(url, "file:") || strings.Contains(url, ":memory:") {
		return url
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", url)
}
