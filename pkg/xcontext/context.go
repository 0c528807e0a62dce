package xcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/dropforge/backend/config"
	"github.com/dropforge/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
	snowflakeKey     struct{}
	requestWalletKey struct{}
	requestIDKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database transaction if one has been opened with
// WithDBTransaction, otherwise the root gorm.DB.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

// WithDBTransaction begins a transaction and replaces the value returned by
// DB until the transaction is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, DB(ctx).Begin())
}

// WithCommitDBTransaction commits the current transaction. It is a no-op if
// the transaction has already finished.
func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok {
		tx.Commit()
	}
}

// WithRollbackDBTransaction rolls back the current transaction. Deferring it
// right after WithDBTransaction is safe; rolling back a committed
// transaction is a no-op.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok {
		tx.Rollback()
	}
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	if !ok {
		panic("no snowflake node in context")
	}

	return node
}

// WithRequestID tags the context with a correlation id for logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}

// WithRequestWallet records the authenticated wallet address of the caller.
func WithRequestWallet(ctx context.Context, wallet string) context.Context {
	return context.WithValue(ctx, requestWalletKey{}, wallet)
}

func RequestWallet(ctx context.Context) string {
	wallet, ok := ctx.Value(requestWalletKey{}).(string)
	if !ok {
		return ""
	}

	return wallet
}
