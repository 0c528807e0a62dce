package domain_test

import (
	"testing"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) balance(t *testing.T, token, holder string) uint64 {
	t.Helper()
	resp, err := e.paymentDomain.Balance(e.ctx, &model.BalanceRequest{
		Token:  token,
		Holder: holder,
	})
	require.NoError(t, err)
	return resp.Balance
}

func TestSetPaymentToken(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), env.balance(t, "", drop.ContractAddress))

	// Native proceeds stay withdrawable after any swap, so they never
	// block it.
	_, err = env.paymentDomain.SetPaymentToken(env.as(testutil.OwnerWallet),
		&model.SetPaymentTokenRequest{DropID: drop.ID, Token: testutil.ERC20Token})
	require.NoError(t, err)

	token, err := env.paymentDomain.GetPaymentToken(env.ctx, &model.GetPaymentTokenRequest{
		DropID: drop.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.ERC20Token, token.Token)

	// Proceeds held in the token being replaced would be stranded, since
	// withdraw only ever sweeps native plus the current token.
	require.NoError(t, env.payments.Mint(env.ctx, testutil.ERC20Token, drop.ContractAddress, 1024))

	_, err = env.paymentDomain.SetPaymentToken(env.as(testutil.OwnerWallet),
		&model.SetPaymentTokenRequest{DropID: drop.ID, Token: ""})
	require.EqualError(t, err, "token must have 0 balance")

	_, err = env.paymentDomain.Withdraw(env.as(testutil.OwnerWallet), &model.WithdrawRequest{
		DropID: drop.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), env.balance(t, testutil.ERC20Token, drop.ContractAddress))

	_, err = env.paymentDomain.SetPaymentToken(env.as(testutil.OwnerWallet),
		&model.SetPaymentTokenRequest{DropID: drop.ID, Token: ""})
	require.NoError(t, err)
}

func TestMintWithERC20(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.PaymentTokenAddress = testutil.ERC20Token
	})

	require.NoError(t, env.payments.Mint(env.ctx, testutil.ERC20Token, testutil.UserWallet, 1000))

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Insufficient allowance")

	_, err = env.paymentDomain.Approve(env.as(testutil.UserWallet), &model.ApproveRequest{
		Token:   testutil.ERC20Token,
		Spender: drop.ContractAddress,
		Amount:  10,
	})
	require.NoError(t, err)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	require.Equal(t, uint64(990), env.balance(t, testutil.ERC20Token, testutil.UserWallet))
	require.Equal(t, uint64(10), env.balance(t, testutil.ERC20Token, drop.ContractAddress))

	// The allowance is spent.
	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Insufficient allowance")
}

func TestWithdraw(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.ArtistSplitBPS = 2000
	})

	_, err := env.mintDomain.MintMultipleEditions(env.as(testutil.UserWallet),
		&model.MintMultipleEditionsRequest{
			DropID:  drop.ID,
			To:      testutil.UserWallet,
			Count:   10,
			Payment: 100,
		})
	require.NoError(t, err)

	_, err = env.paymentDomain.Withdraw(env.as(testutil.UserWallet), &model.WithdrawRequest{
		DropID: drop.ID,
	})
	require.EqualError(t, err, "Caller is not the drop owner")

	_, err = env.paymentDomain.Withdraw(env.as(testutil.OwnerWallet), &model.WithdrawRequest{
		DropID: drop.ID,
	})
	require.NoError(t, err)

	require.Equal(t, uint64(0), env.balance(t, "", drop.ContractAddress))
	require.Equal(t, uint64(20), env.balance(t, "", testutil.ArtistWallet))
	require.Equal(t, uint64(80), env.balance(t, "", testutil.OwnerWallet))
}

func TestWithdrawNoArtist(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.ArtistAddress = ""
		d.ArtistSplitBPS = 2000
	})

	_, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	// Without an artist wallet everything goes to the owner.
	_, err = env.paymentDomain.Withdraw(env.as(testutil.OwnerWallet), &model.WithdrawRequest{
		DropID: drop.ID,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), env.balance(t, "", testutil.OwnerWallet))
}
