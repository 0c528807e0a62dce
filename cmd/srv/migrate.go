package main

import (
	"context"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := xcontext.WithDB(context.Background(), s.db)
	ctx = xcontext.WithLogger(ctx, s.logger)

	if err := entity.MigrateTable(ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}
