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

type SegmentHandler struct {
	segmentUC *usecase.SegmentUseCase
	logger    *zap.Logger
}

func NewSegmentHandler(segmentUC *usecase.SegmentUseCase, logger *zap.Logger) *SegmentHandler {
	return &SegmentHandler{
		segmentUC: segmentUC,
		logger:    logger,
	}
}

// GetSegments godoc
// @Summary Railroad segments near a point
// @Description Stateless: filters the dataset around the point, splits every railroad into lines and draws them colored per railroad.
// @Tags Railroads
// @Accept json
// @Produce json
// @Param request body dto.SegmentsRequest true "Anchor and optional tunables"
// @Success 200 {object} utils.SuccessResponse{data=object,meta=utils.Meta} "GeoJSON FeatureCollection"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/railroads/segments [post]
func (h *SegmentHandler) GetSegments(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.SegmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.segmentUC.GetSegments(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Features, &utils.Meta{
		Total:    len(result.Features.Features),
		Lines:    result.Lines,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
