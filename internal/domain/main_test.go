package domain_test

import (
	"context"

	"github.com/dropforge/backend/internal/client"
	"github.com/dropforge/backend/internal/domain"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/testutil"
	"github.com/dropforge/backend/pkg/xcontext"
)

type testEnv struct {
	ctx context.Context

	dropRepo        repository.DropRepository
	editionRepo     repository.EditionRepository
	reservationRepo repository.ReservationRepository
	minterRepo      repository.MinterRepository
	metadataRepo    repository.MetadataRepository

	registry client.OwnershipRegistry
	payments client.PaymentLedger

	dropDomain        domain.DropDomain
	metadataDomain    domain.MetadataDomain
	mintDomain        domain.MintDomain
	reservationDomain domain.ReservationDomain
	redemptionDomain  domain.RedemptionDomain
	paymentDomain     domain.PaymentDomain
}

func newTestEnv() *testEnv {
	env := &testEnv{
		ctx:             testutil.MockContext(),
		dropRepo:        repository.NewDropRepository(),
		editionRepo:     repository.NewEditionRepository(),
		reservationRepo: repository.NewReservationRepository(),
		minterRepo:      repository.NewMinterRepository(),
		metadataRepo:    repository.NewMetadataRepository(),
	}

	tokenOwnerRepo := repository.NewTokenOwnerRepository()
	paymentRepo := repository.NewPaymentRepository()
	env.registry = client.NewOwnershipRegistry(tokenOwnerRepo)
	env.payments = client.NewPaymentLedger(paymentRepo)

	env.dropDomain = domain.NewDropDomain(env.dropRepo, env.minterRepo)
	env.metadataDomain = domain.NewMetadataDomain(env.dropRepo, env.editionRepo, env.metadataRepo)
	env.mintDomain = domain.NewMintDomain(
		env.dropRepo, env.editionRepo, env.reservationRepo, env.minterRepo, env.metadataRepo,
		env.registry, env.payments)
	env.reservationDomain = domain.NewReservationDomain(env.dropRepo, env.editionRepo, env.reservationRepo)
	env.redemptionDomain = domain.NewRedemptionDomain(env.dropRepo, env.editionRepo, env.registry, env.payments)
	env.paymentDomain = domain.NewPaymentDomain(env.dropRepo, env.payments)

	return env
}

// as returns the environment's context authenticated as the given wallet.
func (e *testEnv) as(wallet string) context.Context {
	return xcontext.WithRequestWallet(e.ctx, wallet)
}
