package main

import (
	"context"
	"fmt"

	"expertqa/internal/db"
)

func (a *app) migrate(ctx context.Context) error {
	gormDB, err := db.ConnectGorm(ctx, a.cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer gormDB.Close()

	if err := gormDB.Migrate(ctx); err != nil {
		return err
	}
	a.logger.Info("schema migrated")
	return nil
}
