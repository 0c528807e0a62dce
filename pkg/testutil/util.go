package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dropforge/backend/config"
	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/pkg/logger"
	"github.com/dropforge/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context backed by a fresh in-memory database with
// all tables migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: time.Minute,
			},
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// MockContextWithWallet is MockContext with an authenticated caller.
func MockContextWithWallet(wallet string) context.Context {
	return xcontext.WithRequestWallet(MockContext(), wallet)
}
