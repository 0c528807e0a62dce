package domain_test

import (
	"fmt"
	"testing"

	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func metadataItems(count int) []model.MetadataChunkItem {
	items := make([]model.MetadataChunkItem, count)
	for i := range items {
		items[i] = model.MetadataChunkItem{
			Description:  fmt.Sprintf("edition %d", i+1),
			AnimationURL: fmt.Sprintf("http://media.com/%d.mp4", i+1),
			ImageURL:     fmt.Sprintf("http://media.com/%d.jpg", i+1),
		}
	}
	return items
}

func TestLoadMetadataChunkValidation(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.RequiresFullMetadata = true
	})

	_, err := env.metadataDomain.LoadChunk(env.as(testutil.UserWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 1,
		Count:      1,
		Items:      metadataItems(1),
	})
	require.EqualError(t, err, "Caller is not the drop owner")

	_, err = env.metadataDomain.LoadChunk(env.as(testutil.OwnerWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 0,
		Count:      1,
		Items:      metadataItems(1),
	})
	require.EqualError(t, err, "StartIndex > 0")

	_, err = env.metadataDomain.LoadChunk(env.as(testutil.OwnerWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 8,
		Count:      5,
		Items:      metadataItems(5),
	})
	require.EqualError(t, err, "Data large than drop size")

	_, err = env.metadataDomain.LoadChunk(env.as(testutil.OwnerWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 1,
		Count:      5,
		Items:      metadataItems(3),
	})
	require.EqualError(t, err, "Data size mismatch")
}

func TestMetadataGatesMinting(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, func(d *entity.Drop) {
		d.RequiresFullMetadata = true
	})

	loaded, err := env.metadataDomain.Loaded(env.ctx, &model.MetadataLoadedRequest{DropID: drop.ID})
	require.NoError(t, err)
	require.False(t, loaded.Complete)

	_, err = env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.EqualError(t, err, "Not all metadata loaded")

	_, err = env.metadataDomain.LoadChunk(env.as(testutil.OwnerWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 1,
		Count:      5,
		Items:      metadataItems(5),
	})
	require.NoError(t, err)

	loaded, err = env.metadataDomain.Loaded(env.ctx, &model.MetadataLoadedRequest{DropID: drop.ID})
	require.NoError(t, err)
	require.False(t, loaded.Complete)

	_, err = env.metadataDomain.LoadChunk(env.as(testutil.OwnerWallet), &model.LoadMetadataChunkRequest{
		DropID:     drop.ID,
		StartIndex: 6,
		Count:      5,
		Items:      metadataItems(5),
	})
	require.NoError(t, err)

	loaded, err = env.metadataDomain.Loaded(env.ctx, &model.MetadataLoadedRequest{DropID: drop.ID})
	require.NoError(t, err)
	require.True(t, loaded.Complete)

	resp, err := env.mintDomain.Purchase(env.as(testutil.UserWallet), &model.PurchaseRequest{
		DropID:  drop.ID,
		Payment: 10,
	})
	require.NoError(t, err)

	uri, err := env.metadataDomain.TokenURI(env.ctx, &model.TokenURIRequest{
		DropID:  drop.ID,
		TokenID: resp.TokenID,
	})
	require.NoError(t, err)
	require.Equal(t, "http://media.com/1.mp4", uri.URI)
}

func TestTokenURIUnknownToken(t *testing.T) {
	env := newTestEnv()
	drop := testutil.CreateSampleDrop(env.ctx, nil)

	for _, tokenID := range []int64{0, 1, 11} {
		_, err := env.metadataDomain.TokenURI(env.ctx, &model.TokenURIRequest{
			DropID:  drop.ID,
			TokenID: tokenID,
		})
		require.EqualError(t, err, "No token")
	}
}
