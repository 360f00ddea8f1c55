package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/domain/repository"
	"github.com/milepost-service/internal/milepost"
	"github.com/milepost-service/internal/pkg/errors"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/milepost-service/internal/render"
	"github.com/milepost-service/internal/usecase/dto"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// MarkerUpdate is one anchor move.
type MarkerUpdate struct {
	Anchor    orb.Point
	Force     bool
	Params    milepost.Params
	RequestID uint64
}

type MilepostUseCase struct {
	crossings CrossingSource
	sessions  repository.SessionRepository
	defaults  milepost.Params
	logger    *zap.Logger
	now       func() time.Time
}

func NewMilepostUseCase(
	crossings CrossingSource,
	sessions repository.SessionRepository,
	defaults milepost.Params,
	logger *zap.Logger,
) *MilepostUseCase {
	return &MilepostUseCase{
		crossings: crossings,
		sessions:  sessions,
		defaults:  defaults,
		logger:    logger,
		now:       time.Now,
	}
}

// UpdateMarkers moves the anchor and redraws layer. It refetches the dataset
// when prev cannot serve the new anchor, otherwise it re-measures the cached
// lines. On a fetch failure the layer is left as it was and prev is returned
// with the error.
func (uc *MilepostUseCase) UpdateMarkers(
	ctx context.Context,
	prev domain.AnchorState,
	in MarkerUpdate,
	layer domain.Layer,
) (domain.AnchorState, error) {
	p := in.Params

	var next domain.AnchorState
	if milepost.NeedsRefetch(prev, in.Anchor, in.Force, p.RefetchDistanceMeters) {
		idx, err := uc.crossings.Index(ctx, in.Force)
		if err != nil {
			uc.logger.Error("Failed to refresh crossings",
				zap.Float64("lat", in.Anchor.Lat()),
				zap.Float64("lon", in.Anchor.Lon()),
				zap.Error(err))
			return prev, errors.ErrUpstreamUnavailable.WithDetails(map[string]interface{}{
				"reason": err.Error(),
			})
		}

		records := idx.Near(in.Anchor, p.MaxDistanceMiles*geo.MetersPerMile)
		lines := milepost.BuildRailLines(records, in.Anchor, p)
		next = milepost.Rebuilt(lines, in.Anchor, in.RequestID, uc.now())

		uc.logger.Debug("Rail lines rebuilt",
			zap.Int("candidates", len(records)),
			zap.Int("lines", len(lines)))
	} else {
		next = milepost.Recompute(prev, in.Anchor, in.RequestID)
	}

	plan := milepost.PlanRender(next.Lines, in.Anchor, p.MaxPointsPerLine, p.KeepUnprojectedLines)
	render.Draw(layer, in.Anchor, plan)

	return next, nil
}

// UpdateSessionMarkers runs UpdateMarkers against a session's state and
// commits the result unless a newer request got there first.
func (uc *MilepostUseCase) UpdateSessionMarkers(
	ctx context.Context,
	sessionID string,
	req dto.UpdateMarkersRequest,
) (*dto.LayerResult, error) {
	session, err := uc.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	anchor := orb.Point{*req.Lon, *req.Lat}
	if !geo.ValidateCoordinates(anchor.Lat(), anchor.Lon()) {
		return nil, errors.ErrInvalidCoordinates
	}

	params := applyTunables(uc.defaults, req.Tunables)
	if req.MaxPointsPerLine != nil {
		params.MaxPointsPerLine = *req.MaxPointsPerLine
	}

	requestID := session.BeginRequest()
	prev := session.State()
	layer := render.NewGeoJSONLayer()
	refetch := milepost.NeedsRefetch(prev, anchor, req.Force, params.RefetchDistanceMeters)

	next, err := uc.UpdateMarkers(ctx, prev, MarkerUpdate{
		Anchor:    anchor,
		Force:     req.Force,
		Params:    params,
		RequestID: requestID,
	}, layer)
	if err != nil {
		return nil, err
	}

	if !session.Commit(next, uc.now()) {
		uc.logger.Info("Discarding stale marker update",
			zap.String("session_id", sessionID),
			zap.Uint64("request_id", requestID))
		return nil, errors.ErrStaleRefresh
	}

	if err := uc.sessions.Touch(ctx, session); err != nil {
		if stderrors.Is(err, errors.ErrSessionNotFound) {
			// deleted while this update was running
			return nil, err
		}
		uc.logger.Warn("Failed to touch session", zap.String("session_id", sessionID), zap.Error(err))
	}

	return &dto.LayerResult{
		Features:  layer.FeatureCollection(),
		Lines:     len(next.Lines),
		Markers:   countMarkers(layer),
		Refetched: refetch,
	}, nil
}

func (uc *MilepostUseCase) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := uc.sessions.Create(ctx)
	if err != nil {
		uc.logger.Error("Failed to create session", zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (uc *MilepostUseCase) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := uc.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (uc *MilepostUseCase) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return errors.ErrInvalidSessionID
	}
	return uc.sessions.Delete(ctx, id)
}

func (uc *MilepostUseCase) session(ctx context.Context, sessionID string) (*domain.Session, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, errors.ErrInvalidSessionID
	}
	return uc.sessions.Get(ctx, id)
}

func applyTunables(p milepost.Params, t dto.Tunables) milepost.Params {
	if t.MaxNearbyPoints != nil {
		p.MaxNearbyPoints = *t.MaxNearbyPoints
	}
	if t.MaxDistanceMiles != nil {
		p.MaxDistanceMiles = *t.MaxDistanceMiles
	}
	if t.MilepostGapThreshold != nil {
		p.MilepostGapThreshold = *t.MilepostGapThreshold
	}
	if t.SpatialProximityMeters != nil {
		p.SpatialProximityMeters = *t.SpatialProximityMeters
	}
	return p
}

// countMarkers counts milepost markers; the target marker is not one.
func countMarkers(layer *render.GeoJSONLayer) int {
	n := 0
	for _, f := range layer.FeatureCollection().Features {
		if f.Properties[render.PropIconKind] == string(domain.MarkerMilepost) {
			n++
		}
	}
	return n
}

func toSessionResponse(s *domain.Session) *dto.SessionResponse {
	state := s.State()
	resp := &dto.SessionResponse{
		ID:        s.ID.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt(),
		Lines:     len(state.Lines),
	}
	if !state.IsEmpty() {
		resp.Anchor = &dto.LatLon{Lat: state.Anchor.Lat(), Lon: state.Anchor.Lon()}
	}
	if state.Fetched {
		fetchedAt := state.FetchedAt
		resp.FetchAnchor = &dto.LatLon{Lat: state.FetchAnchor.Lat(), Lon: state.FetchAnchor.Lon()}
		resp.FetchedAt = &fetchedAt
	}
	return resp
}
