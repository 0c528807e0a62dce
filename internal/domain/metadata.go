package domain

import (
	"context"
	"fmt"

	"github.com/dropforge/backend/internal/common"
	"github.com/dropforge/backend/internal/entity"
	"github.com/dropforge/backend/internal/model"
	"github.com/dropforge/backend/internal/repository"
	"github.com/dropforge/backend/pkg/errorx"
	"github.com/dropforge/backend/pkg/xcontext"
)

type MetadataDomain interface {
	LoadChunk(ctx context.Context, req *model.LoadMetadataChunkRequest) (*model.LoadMetadataChunkResponse, error)
	Loaded(ctx context.Context, req *model.MetadataLoadedRequest) (*model.MetadataLoadedResponse, error)
	TokenURI(ctx context.Context, req *model.TokenURIRequest) (*model.TokenURIResponse, error)
}

type metadataDomain struct {
	dropRepo     repository.DropRepository
	editionRepo  repository.EditionRepository
	metadataRepo repository.MetadataRepository
}

func NewMetadataDomain(
	dropRepo repository.DropRepository,
	editionRepo repository.EditionRepository,
	metadataRepo repository.MetadataRepository,
) *metadataDomain {
	return &metadataDomain{
		dropRepo:     dropRepo,
		editionRepo:  editionRepo,
		metadataRepo: metadataRepo,
	}
}

func (d *metadataDomain) LoadChunk(
	ctx context.Context, req *model.LoadMetadataChunkRequest,
) (*model.LoadMetadataChunkResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if err := common.RequireDropOwner(ctx, drop); err != nil {
		return nil, err
	}

	if req.StartIndex <= 0 {
		return nil, errorx.New(errorx.InvalidStartIndex, "StartIndex > 0")
	}

	if !drop.Unbounded() && req.StartIndex+req.Count-1 > drop.DropSize {
		return nil, errorx.New(errorx.DataExceedsDropSize, "Data large than drop size")
	}

	if int64(len(req.Items)) != req.Count {
		return nil, errorx.New(errorx.SizeMismatch, "Data size mismatch")
	}

	items := make([]*entity.MetadataItem, 0, len(req.Items))
	for i, item := range req.Items {
		items = append(items, &entity.MetadataItem{
			DropID:        drop.ID,
			Index:         req.StartIndex + int64(i),
			Description:   item.Description,
			AnimationURL:  item.AnimationURL,
			AnimationHash: item.AnimationHash,
			ImageURL:      item.ImageURL,
			ImageHash:     item.ImageHash,
		})
	}

	if err := d.metadataRepo.UpsertBatch(ctx, items); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert metadata chunk: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoadMetadataChunkResponse{}, nil
}

func (d *metadataDomain) Loaded(
	ctx context.Context, req *model.MetadataLoadedRequest,
) (*model.MetadataLoadedResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	complete, err := metadataComplete(ctx, d.metadataRepo, drop)
	if err != nil {
		return nil, err
	}

	return &model.MetadataLoadedResponse{Complete: complete}, nil
}

func (d *metadataDomain) TokenURI(
	ctx context.Context, req *model.TokenURIRequest,
) (*model.TokenURIResponse, error) {
	drop, err := findDrop(ctx, d.dropRepo, req.DropID)
	if err != nil {
		return nil, err
	}

	if req.TokenID < 1 || req.TokenID > drop.EffectiveSize() {
		return nil, errorx.New(errorx.NoToken, "No token")
	}

	edition, err := d.editionRepo.Get(ctx, drop.ID, req.TokenID)
	if err != nil {
		return nil, errorx.New(errorx.NoToken, "No token")
	}

	// Once redeemed, the descriptor recorded at production time replaces the
	// original metadata.
	if edition.RedeemedState == entity.StateRedeemed {
		uri := edition.RedeemedAnimationURL
		if uri == "" {
			uri = edition.RedeemedImageURL
		}

		return &model.TokenURIResponse{URI: uri}, nil
	}

	if drop.RequiresFullMetadata {
		item, err := d.metadataRepo.Get(ctx, drop.ID, edition.MetadataIndex)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get metadata item: %v", err)
			return nil, errorx.Unknown
		}

		uri := item.AnimationURL
		if uri == "" {
			uri = item.ImageURL
		}

		return &model.TokenURIResponse{URI: uri}, nil
	}

	return &model.TokenURIResponse{
		URI: fmt.Sprintf("%s%d.json", drop.BaseURL, edition.MetadataIndex),
	}, nil
}

// metadataComplete reports whether every index of a bounded drop has a
// metadata row. Unbounded drops and drops minting against a base url never
// block on metadata.
func metadataComplete(ctx context.Context, metadataRepo repository.MetadataRepository, drop *entity.Drop) (bool, error) {
	if !drop.RequiresFullMetadata || drop.Unbounded() {
		return true, nil
	}

	count, err := metadataRepo.Count(ctx, drop.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count metadata: %v", err)
		return false, errorx.Unknown
	}

	return count >= drop.DropSize, nil
}
