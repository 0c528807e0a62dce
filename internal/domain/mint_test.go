package domain_test

import (
	"fmt"
	"testing"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestMintInOrder(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	for want := int64(1); want <= 3; want++ {
		resp, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
			DropID:  drop.ID,
			Payment: 10,
		})
		require.NoError(t, err)
		require.Equal(t, want, resp.TokenID)
	}

	owner, err := env.mintDomain.OwnerOf(env.ctx, &model.OwnerOfRequest{DropID: drop.ID, TokenID: 1})
	require.NoError(t, err)
	require.Equal(t, testutil.UserWallet, owner.Owner)

	info, err := env.dropDomain.Get(env.ctx, &model.GetDropRequest{DropID: drop.ID})
	require.NoError(t, err)
	require.Equal(t, int64(3), info.TotalSupply)
	require.Equal(t, int64(7), info.NumberCanMint)
}

func TestMintWrongPrice(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	for _, payment := range []uint64{0, 9, 11} {
		_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
			DropID:  drop.ID,
			Payment: payment,
		})
		require.EqualError(t, err, "Wrong price")
	}
}

func TestMintExceededSupply(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.DropSize = 2
		d.NumberOfDifferentEditions = 2
	})

	_, err := env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   3,
			Payment: 30,
		})
	require.EqualError(t, err, "Exceeded supply")

	// Payment is vetted before supply, so a request wrong on both counts
	// reports the price problem.
	_, err = env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   3,
			Payment: 10,
		})
	require.EqualError(t, err, "Wrong price")

	_, err = env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   2,
			Payment: 20,
		})
	require.NoError(t, err)

	_, err = env.mintDomain.Purchase(env.as(testutil.User2Wallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Exceeded supply")
}

func TestMintLimit(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.GeneralMintLimit = 1
	})

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Exceeded mint limit")

	limit, err := env.dropDomain.GetMintLimit(env.ctx, &model.GetMintLimitRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), limit.Limit)
}

func TestClosedDropOwnerMints(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.AllowedMinter = entity.TierClosed
		d.SalePrice = 0
		d.CurrentSalePrice = 0
	})

	_, err := env.mintDomain.Purchase(env.as(testutil.OwnerWallet), &model.PurchaseRequest{
		DropID: drop.ID,
	})
	require.EqualError(t, err, "Not for sale")

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID: drop.ID,
	})
	require.EqualError(t, err, "Needs to be an allowed minter")

	_, err = env.dropDomain.SetSalePrice(env.as(testutil.OwnerWallet), &model.SetSalePriceRequest{
		DropID: drop.ID,
		Tier:   0,
		Price:  20,
	})
	require.NoError(t, err)

	resp, err := env.mintDomain.Purchase(env.as(testutil.OwnerWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 20,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TokenID)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 20,
	})
	require.EqualError(t, err, "Needs to be an allowed minter")
}

func TestClosedDropStrict(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.AllowedMinter = entity.TierClosed
		d.OwnerMintsWhenClosed = false
	})

	_, err := env.mintDomain.Purchase(env.as(testutil.OwnerWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Needs to be an allowed minter")
}

func TestAllowListTier(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.AllowedMinter = entity.TierAllowList
		d.MembersSalePrice = 5
	})

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 5,
	})
	require.EqualError(t, err, "Needs to be an allowed minter")

	_, err = env.dropDomain.SetAllowListMinters(env.as(testutil.OwnerWallet),
		&model.SetAllowListMintersRequest{
			DropID:  drop.ID,
			List:    entity.ListAllowList,
			Wallets: []string{testutil.UserWallet},
			Allowed: []bool{true},
		})
	require.NoError(t, err)

	price, err := env.dropDomain.Price(env.ctx, &model.PriceRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(5), price.Price)

	resp, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 5,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TokenID)

	// The owner may always mint outside the closed phase.
	_, err = env.mintDomain.Purchase(env.as(testutil.OwnerWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)
}

func TestVIPTier(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.HasVIP = true
		d.AllowedMinter = entity.TierVIP
		d.VIPSalePrice = 7
	})

	_, err := env.dropDomain.SetAllowListMinters(env.as(testutil.OwnerWallet),
		&model.SetAllowListMintersRequest{
			DropID:  drop.ID,
			List:    entity.ListAllowList,
			Wallets: []string{testutil.UserWallet},
			Allowed: []bool{true},
		})
	require.NoError(t, err)

	_, err = env.dropDomain.SetAllowListMinters(env.as(testutil.OwnerWallet),
		&model.SetAllowListMintersRequest{
			DropID:  drop.ID,
			List:    entity.ListVIP,
			Wallets: []string{testutil.VIPWallet},
			Allowed: []bool{true},
		})
	require.NoError(t, err)

	// Allow-listed is not enough during the vip phase.
	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Needs to be an allowed minter")

	resp, err := env.mintDomain.Purchase(env.as(testutil.VIPWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 7,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TokenID)
}

func TestFreeMints(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.dropDomain.SetFreeMints(env.as(testutil.OwnerWallet), &model.SetFreeMintsRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
		Count:  2,
	})
	require.NoError(t, err)

	count, err := env.dropDomain.NumberOfFreeMints(env.ctx, &model.NumberOfFreeMintsRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), count.Count)

	// An outstanding grant means the wallet's next mint is free.
	price, err := env.dropDomain.Price(env.ctx, &model.PriceRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), price.Price)

	// A batch of three spends both free mints and pays for one.
	_, err = env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   3,
			Payment: 10,
		})
	require.NoError(t, err)

	count, err = env.dropDomain.NumberOfFreeMints(env.ctx, &model.NumberOfFreeMintsRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)

	price, err = env.dropDomain.Price(env.ctx, &model.PriceRequest{
		DropID: drop.ID,
		Wallet: testutil.UserWallet,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), price.Price)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID: drop.ID,
	})
	require.EqualError(t, err, "Wrong price")
}

func TestRandomMint(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.RandomMint = true
	})

	resp, err := env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   10,
			Payment: 100,
		})
	require.NoError(t, err)
	require.Len(t, resp.TokenIDs, 10)

	seen := map[int64]bool{}
	for _, id := range resp.TokenIDs {
		require.GreaterOrEqual(t, id, int64(1))
		require.LessOrEqual(t, id, int64(10))
		require.False(t, seen[id])
		seen[id] = true
	}

	_, err = env.mintDomain.Purchase(env.as(testutil.User2Wallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Exceeded supply")
}

func TestBurn(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	resp, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	_, err = env.mintDomain.Burn(env.as(testutil.User2Wallet), &model.BurnRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
	})
	require.EqualError(t, err, "Not approved")

	_, err = env.mintDomain.Burn(env.as(testutil.UserWallet), &model.BurnRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
	})
	require.NoError(t, err)

	_, err = env.mintDomain.OwnerOf(env.ctx, &model.OwnerOfRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
	})
	require.EqualError(t, err, "No token")

	info, err := env.dropDomain.Get(env.ctx, &model.GetDropRequest{DropID: drop.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), info.TotalSupply)
	require.Equal(t, int64(9), info.NumberCanMint)

	// The burned id is not minted again.
	next, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), next.TokenID)
}

func TestTransfer(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	resp, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	_, err = env.mintDomain.Transfer(env.as(testutil.User2Wallet), &model.TransferRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
		To:      testutil.User2Wallet,
	})
	require.EqualError(t, err, "Not approved")

	_, err = env.mintDomain.Transfer(env.as(testutil.UserWallet), &model.TransferRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
		To:      testutil.User2Wallet,
	})
	require.NoError(t, err)

	owner, err := env.mintDomain.OwnerOf(env.ctx, &model.OwnerOfRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2Wallet, owner.Owner)
}

func TestEditionCycling(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.NumberOfDifferentEditions = 3
	})

	_, err := env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   4,
			Payment: 40,
		})
	require.NoError(t, err)

	for tokenID, edition := range map[int64]int64{1: 1, 2: 2, 3: 3, 4: 1} {
		uri, err := env.metadataDomain.TokenURI(env.ctx, &model.TokenURIRequest{
			DropID:  drop.ID,
			TokenID: tokenID,
		})
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("http://example.com/%d.json", edition), uri.URI)
	}

	// Changing the edition count only remaps tokens minted afterwards.
	_, err = env.dropDomain.SetEditionsCount(env.as(testutil.OwnerWallet),
		&model.SetEditionsCountRequest{DropID: drop.ID, Count: 5})
	require.NoError(t, err)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	for tokenID, edition := range map[int64]int64{4: 1, 5: 5} {
		uri, err := env.metadataDomain.TokenURI(env.ctx, &model.TokenURIRequest{
			DropID:  drop.ID,
			TokenID: tokenID,
		})
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("http://example.com/%d.json", edition), uri.URI)
	}
}

func TestMintEditionsToRecipients(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	resp, err := env.mintDomain.MintEditions(env.as(testutil.UserWallet),
		&model.MintEditionsRequest{
			DropID:     drop.ID,
			Recipients: []string{testutil.UserWallet, testutil.User2Wallet},
			Payment:    20,
		})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, resp.TokenIDs)

	owner, err := env.mintDomain.OwnerOf(env.ctx, &model.OwnerOfRequest{DropID: drop.ID, TokenID: 2})
	require.NoError(t, err)
	require.Equal(t, testutil.User2Wallet, owner.Owner)
}
