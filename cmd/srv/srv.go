package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bwmarrin/snowflake"
	"github.com/dropforge/backend/config"
	"github.com/dropforge/backend/internal/client"
	"github.com/dropforge/backend/internal/domain"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/authenticator"
	"github.com/dropforge/backend/pkg/logger"
	"github.com/dropforge/backend/pkg/router"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB
	node    *snowflake.Node

	dropRepo        repository.DropRepository
	editionRepo     repository.EditionRepository
	reservationRepo repository.ReservationRepository
	minterRepo      repository.MinterRepository
	metadataRepo    repository.MetadataRepository
	tokenOwnerRepo  repository.TokenOwnerRepository
	paymentRepo     repository.PaymentRepository

	registry client.OwnershipRegistry
	payments client.PaymentLedger

	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
	challengeEngine   authenticator.TokenEngine[model.WalletChallenge]

	authDomain        domain.AuthDomain
	dropDomain        domain.DropDomain
	metadataDomain    domain.MetadataDomain
	mintDomain        domain.MintDomain
	reservationDomain domain.ReservationDomain
	redemptionDomain  domain.RedemptionDomain
	paymentDomain     domain.PaymentDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func (s *srv) loadConfig() {
	logLevel, err := strconv.Atoi(getEnv("LOG_LEVEL", "1"))
	if err != nil {
		panic(err)
	}

	tokenExpiration, err := time.ParseDuration(getEnv("TOKEN_EXPIRATION", "24h"))
	if err != nil {
		panic(err)
	}

	s.configs = &config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: logLevel,
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "dropforge"),
			Password: getEnv("MYSQL_PASSWORD", "dropforge"),
			Database: getEnv("MYSQL_DATABASE", "dropforge"),
		},
		ApiServer: config.ServerConfigs{
			Host:      getEnv("HOST", ""),
			Port:      getEnv("PORT", "8080"),
			Cert:      getEnv("SERVER_CERT", ""),
			Key:       getEnv("SERVER_KEY", ""),
			AllowCORS: strings.Split(getEnv("ALLOW_CORS", "*"), ","),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token_secret"),
				Expiration: tokenExpiration,
			},
		},
	}

	// A toml file overrides the environment when provided.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, s.configs); err != nil {
			panic(err)
		}
	}
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.LogLevel)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.dropRepo = repository.NewDropRepository()
	s.editionRepo = repository.NewEditionRepository()
	s.reservationRepo = repository.NewReservationRepository()
	s.minterRepo = repository.NewMinterRepository()
	s.metadataRepo = repository.NewMetadataRepository()
	s.tokenOwnerRepo = repository.NewTokenOwnerRepository()
	s.paymentRepo = repository.NewPaymentRepository()
}

func (s *srv) loadClients() {
	s.registry = client.NewOwnershipRegistry(s.tokenOwnerRepo)
	s.payments = client.NewPaymentLedger(s.paymentRepo)
}

func (s *srv) loadDomains() {
	s.accessTokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken)
	s.challengeEngine = authenticator.NewTokenEngine[model.WalletChallenge](config.TokenConfigs{
		Name:       "challenge",
		Secret:     s.configs.Auth.AccessToken.Secret,
		Expiration: 5 * time.Minute,
	})

	s.authDomain = domain.NewAuthDomain(s.accessTokenEngine, s.challengeEngine)
	s.dropDomain = domain.NewDropDomain(s.dropRepo, s.minterRepo)
	s.metadataDomain = domain.NewMetadataDomain(s.dropRepo, s.editionRepo, s.metadataRepo)
	s.mintDomain = domain.NewMintDomain(
		s.dropRepo, s.editionRepo, s.reservationRepo, s.minterRepo, s.metadataRepo,
		s.registry, s.payments)
	s.reservationDomain = domain.NewReservationDomain(s.dropRepo, s.editionRepo, s.reservationRepo)
	s.redemptionDomain = domain.NewRedemptionDomain(s.dropRepo, s.editionRepo, s.registry, s.payments)
	s.paymentDomain = domain.NewPaymentDomain(s.dropRepo, s.payments)
}
