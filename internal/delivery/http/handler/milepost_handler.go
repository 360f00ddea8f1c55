package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/milepost-service/internal/pkg/errors"
	"github.com/milepost-service/internal/pkg/utils"
	"github.com/milepost-service/internal/pkg/validator"
	"github.com/milepost-service/internal/usecase"
	"github.com/milepost-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// MilepostHandler serves session lifecycle and marker updates.
type MilepostHandler struct {
	milepostUC *usecase.MilepostUseCase
	logger     *zap.Logger
}

func NewMilepostHandler(milepostUC *usecase.MilepostUseCase, logger *zap.Logger) *MilepostHandler {
	return &MilepostHandler{
		milepostUC: milepostUC,
		logger:     logger,
	}
}

// CreateSession godoc
// @Summary Create a session
// @Description Opens a map session. The session owns its rail lines, anchor and drawn layer.
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *MilepostHandler) CreateSession(c *fiber.Ctx) error {
	result, err := h.milepostUC.CreateSession(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result, nil)
}

// GetSession godoc
// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *MilepostHandler) GetSession(c *fiber.Ctx) error {
	result, err := h.milepostUC.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *MilepostHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.milepostUC.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMarkers godoc
// @Summary Update milepost markers
// @Description Moves the session anchor and redraws the layer: the target marker, one interpolated milepost marker per nearby rail line, and the line polylines. The dataset is refetched when forced, when fewer than two lines are cached, or when the anchor moved past the refetch distance.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateMarkersRequest true "Anchor and optional tunables"
// @Success 200 {object} utils.SuccessResponse{data=object,meta=utils.Meta} "GeoJSON FeatureCollection"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/markers [post]
func (h *MilepostHandler) UpdateMarkers(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.UpdateMarkersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.milepostUC.UpdateSessionMarkers(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Features, &utils.Meta{
		Total:     len(result.Features.Features),
		Lines:     result.Lines,
		Markers:   result.Markers,
		Refetched: result.Refetched,
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
	})
}
