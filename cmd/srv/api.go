package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dropforge/backend/internal/middleware"
	"github.com/dropforge/backend/pkg/router"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadClients()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	g, ctx := errgroup.WithContext(ct.Context)
	g.Go(func() error {
		s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}

		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case <-ctx.Done():
		}

		return s.server.Shutdown(context.Background())
	})

	return g.Wait()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger, s.node)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	{
		router.POST(authRouter, "/wallet/login", s.authDomain.WalletLogin)
		router.POST(authRouter, "/wallet/verify", s.authDomain.WalletVerify)
	}

	// Public reads
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getDrop", s.dropDomain.Get)
		router.GET(publicRouter, "/getAllowList", s.dropDomain.GetAllowList)
		router.GET(publicRouter, "/numberOfFreeMints", s.dropDomain.NumberOfFreeMints)
		router.GET(publicRouter, "/canMint", s.dropDomain.CanMint)
		router.GET(publicRouter, "/getPrice", s.dropDomain.Price)
		router.GET(publicRouter, "/getMintLimit", s.dropDomain.GetMintLimit)
		router.GET(publicRouter, "/royaltyInfo", s.dropDomain.RoyaltyInfo)

		router.GET(publicRouter, "/metadataLoaded", s.metadataDomain.Loaded)
		router.GET(publicRouter, "/tokenURI", s.metadataDomain.TokenURI)

		router.GET(publicRouter, "/ownerOf", s.mintDomain.OwnerOf)

		router.GET(publicRouter, "/isReserved", s.reservationDomain.IsReserved)
		router.GET(publicRouter, "/whoReserved", s.reservationDomain.WhoReserved)
		router.GET(publicRouter, "/getReservationsCount", s.reservationDomain.Count)
		router.GET(publicRouter, "/getReservationsList", s.reservationDomain.List)

		router.GET(publicRouter, "/redeemedState", s.redemptionDomain.State)
		router.GET(publicRouter, "/getPaymentToken", s.paymentDomain.GetPaymentToken)
		router.GET(publicRouter, "/getBalance", s.paymentDomain.Balance)
	}

	// These following APIs need authentication with the access token.
	authedRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier(s.accessTokenEngine)
	authedRouter.Before(authVerifier.Middleware())
	{
		// Drop API
		router.POST(authedRouter, "/createDrop", s.dropDomain.Create)
		router.POST(authedRouter, "/setPricing", s.dropDomain.SetPricing)
		router.POST(authedRouter, "/setSalePrice", s.dropDomain.SetSalePrice)
		router.POST(authedRouter, "/setAllowedMinter", s.dropDomain.SetAllowedMinter)
		router.POST(authedRouter, "/setAllowListMinters", s.dropDomain.SetAllowListMinters)
		router.POST(authedRouter, "/setFreeMints", s.dropDomain.SetFreeMints)
		router.POST(authedRouter, "/setRandomMint", s.dropDomain.SetRandomMint)
		router.POST(authedRouter, "/setEditionsCount", s.dropDomain.SetEditionsCount)
		router.POST(authedRouter, "/setDropSize", s.dropDomain.SetDropSize)
		router.POST(authedRouter, "/setArtistWallet", s.dropDomain.SetArtistWallet)

		// Metadata API
		router.POST(authedRouter, "/loadMetadataChunk", s.metadataDomain.LoadChunk)

		// Mint API
		router.POST(authedRouter, "/purchase", s.mintDomain.Purchase)
		router.POST(authedRouter, "/mintEdition", s.mintDomain.MintEdition)
		router.POST(authedRouter, "/mintEditions", s.mintDomain.MintEditions)
		router.POST(authedRouter, "/mintMultipleEditions", s.mintDomain.MintMultipleEditions)
		router.POST(authedRouter, "/transfer", s.mintDomain.Transfer)
		router.POST(authedRouter, "/burn", s.mintDomain.Burn)

		// Reservation API
		router.POST(authedRouter, "/reserve", s.reservationDomain.Reserve)
		router.POST(authedRouter, "/unreserve", s.reservationDomain.Unreserve)

		// Redemption API
		router.POST(authedRouter, "/redeem", s.redemptionDomain.Redeem)
		router.POST(authedRouter, "/abortRedemption", s.redemptionDomain.Abort)
		router.POST(authedRouter, "/setOfferTerms", s.redemptionDomain.SetOfferTerms)
		router.POST(authedRouter, "/rejectOfferTerms", s.redemptionDomain.RejectOfferTerms)
		router.POST(authedRouter, "/acceptOfferTerms", s.redemptionDomain.AcceptOfferTerms)
		router.POST(authedRouter, "/productionStart", s.redemptionDomain.ProductionStart)
		router.POST(authedRouter, "/productionComplete", s.redemptionDomain.ProductionComplete)
		router.POST(authedRouter, "/acceptDelivery", s.redemptionDomain.AcceptDelivery)

		// Payment API
		router.POST(authedRouter, "/setPaymentToken", s.paymentDomain.SetPaymentToken)
		router.POST(authedRouter, "/withdraw", s.paymentDomain.Withdraw)
		router.POST(authedRouter, "/approve", s.paymentDomain.Approve)
	}
}
