package usecase

import (
	"context"

	"github.com/milepost-service/internal/milepost"
	"github.com/milepost-service/internal/pkg/errors"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/milepost-service/internal/render"
	"github.com/milepost-service/internal/usecase/dto"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// SegmentUseCase serves the per-railroad segment view. It keeps no state.
type SegmentUseCase struct {
	crossings CrossingSource
	defaults  milepost.Params
	logger    *zap.Logger
}

func NewSegmentUseCase(crossings CrossingSource, defaults milepost.Params, logger *zap.Logger) *SegmentUseCase {
	return &SegmentUseCase{
		crossings: crossings,
		defaults:  defaults,
		logger:    logger,
	}
}

func (uc *SegmentUseCase) GetSegments(ctx context.Context, req dto.SegmentsRequest) (*dto.LayerResult, error) {
	anchor := orb.Point{*req.Lon, *req.Lat}
	if !geo.ValidateCoordinates(anchor.Lat(), anchor.Lon()) {
		return nil, errors.ErrInvalidCoordinates
	}

	params := applyTunables(uc.defaults, req.Tunables)

	idx, err := uc.crossings.Index(ctx, false)
	if err != nil {
		uc.logger.Error("Failed to load crossings", zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	records := idx.Near(anchor, params.MaxDistanceMiles*geo.MetersPerMile)
	groups := milepost.BuildSegments(records, anchor, params)

	layer := render.NewGeoJSONLayer()
	render.DrawSegments(layer, anchor, groups)

	segments := 0
	for _, g := range groups {
		segments += len(g.Segments)
	}

	uc.logger.Debug("Railroad segments built",
		zap.Int("railroads", len(groups)),
		zap.Int("segments", segments))

	return &dto.LayerResult{
		Features:  layer.FeatureCollection(),
		Lines:     segments,
		Refetched: false,
	}, nil
}
