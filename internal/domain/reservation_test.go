package domain_test

import (
	"testing"

	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/ethutil"
	"github.com/dropforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.reservationDomain.Reserve(env.as(testutil.UserWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet},
		TokenIDs: []int64{5},
	})
	require.EqualError(t, err, "Caller is not the drop owner")

	_, err = env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet, testutil.User2Wallet},
		TokenIDs: []int64{5},
	})
	require.EqualError(t, err, "Lists length must match")

	_, err = env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet, testutil.UserWallet},
		TokenIDs: []int64{5, 7},
	})
	require.NoError(t, err)

	reserved, err := env.reservationDomain.IsReserved(env.ctx, &model.IsReservedRequest{
		DropID:  drop.ID,
		TokenID: 5,
	})
	require.NoError(t, err)
	require.True(t, reserved.Reserved)

	who, err := env.reservationDomain.WhoReserved(env.ctx, &model.WhoReservedRequest{
		DropID:  drop.ID,
		TokenID: 7,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.UserWallet, who.Wallet)

	count, err := env.reservationDomain.Count(env.ctx, &model.GetReservationsCountRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), count.Count)

	// An already reserved id can not be reserved again.
	_, err = env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.User2Wallet},
		TokenIDs: []int64{5},
	})
	require.EqualError(t, err, "Needs to be unminted")
}

func TestReserveMintedToken(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	_, err = env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet},
		TokenIDs: []int64{1},
	})
	require.EqualError(t, err, "Needs to be unminted")
}

func TestUnreserve(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.reservationDomain.Unreserve(env.as(testutil.OwnerWallet), &model.UnreserveRequest{
		DropID:   drop.ID,
		TokenIDs: []int64{5},
	})
	require.EqualError(t, err, "Not reserved")

	_, err = env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet, testutil.UserWallet, testutil.UserWallet},
		TokenIDs: []int64{3, 5, 7},
	})
	require.NoError(t, err)

	_, err = env.reservationDomain.Unreserve(env.as(testutil.OwnerWallet), &model.UnreserveRequest{
		DropID:   drop.ID,
		TokenIDs: []int64{5},
	})
	require.NoError(t, err)

	reserved, err := env.reservationDomain.IsReserved(env.ctx, &model.IsReservedRequest{
		DropID:  drop.ID,
		TokenID: 5,
	})
	require.NoError(t, err)
	require.False(t, reserved.Reserved)

	who, err := env.reservationDomain.WhoReserved(env.ctx, &model.WhoReservedRequest{
		DropID:  drop.ID,
		TokenID: 5,
	})
	require.NoError(t, err)
	require.Equal(t, ethutil.ZeroAddress, who.Wallet)

	// The released slot keeps its position as a zero.
	list, err := env.reservationDomain.List(env.ctx, &model.GetReservationsListRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 0, 7}, list.TokenIDs)

	count, err := env.reservationDomain.Count(env.ctx, &model.GetReservationsCountRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), count.Count)
}

func TestReservedIDConsumedFirst(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet, testutil.UserWallet},
		TokenIDs: []int64{9, 4},
	})
	require.NoError(t, err)

	// Reserved ids come first, ascending, then the sequential walk.
	resp, err := env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   3,
			Payment: 30,
		})
	require.NoError(t, err)
	require.Equal(t, []int64{4, 9, 1}, resp.TokenIDs)

	count, err := env.reservationDomain.Count(env.ctx, &model.GetReservationsCountRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)
}

func TestReservedIDBlockedForOthers(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.reservationDomain.Reserve(env.as(testutil.OwnerWallet), &model.ReserveRequest{
		DropID:   drop.ID,
		Wallets:  []string{testutil.UserWallet},
		TokenIDs: []int64{1},
	})
	require.NoError(t, err)

	// Another wallet walks past the reserved id.
	resp, err := env.mintDomain.Purchase(env.as(testutil.User2Wallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.TokenID)

	resp, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TokenID)
}
