package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"shmirascheduler/internal/delivery/http/helpers"
	"shmirascheduler/internal/delivery/http/middleware"
	"shmirascheduler/internal/domain"
)

type ShiftController struct {
	Logger  *slog.Logger
	Service domain.SignupService
}

func NewShiftController(logger *slog.Logger, svc domain.SignupService) *ShiftController {
	return &ShiftController{
		Logger:  logger,
		Service: svc,
	}
}

// ShiftBoardSuccessResponse is the success response envelope for GET /shifts and GET /shifts/mine.
type ShiftBoardSuccessResponse struct {
	Data  *domain.ShiftBoard `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListShifts godoc
// @Summary List all upcoming shifts
// @Description Returns every future shift plus the caller's own signups and a summary of the current event.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ShiftBoardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shifts [get]
func (c *ShiftController) ListShifts(w http.ResponseWriter, r *http.Request) {
	c.listShifts(w, r, c.Service.ListShifts)
}

// ListMyShifts godoc
// @Summary List the caller's upcoming shifts
// @Description Returns only the future shifts the authenticated volunteer is signed up for.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ShiftBoardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shifts/mine [get]
func (c *ShiftController) ListMyShifts(w http.ResponseWriter, r *http.Request) {
	c.listShifts(w, r, c.Service.ListMyShifts)
}

type listOp func(ctx context.Context, token string) (*domain.ShiftBoard, error)

type bulkOp func(ctx context.Context, shiftIDs []string, token string) (domain.BulkResult, error)

func (c *ShiftController) listShifts(w http.ResponseWriter, r *http.Request, list listOp) {
	token, ok := middleware.PersonTokenFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	board, err := list(r.Context(), token)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, board)
}

// BulkShiftsRequest is the request body for POST /shifts/signup and POST /shifts/drop.
type BulkShiftsRequest struct {
	ShiftIDs []string `json:"shift_ids"`
}

// Validate implements helpers.Validator.
func (r *BulkShiftsRequest) Validate() []string {
	if len(r.ShiftIDs) == 0 {
		return []string{"shift_ids is required"}
	}
	for _, id := range r.ShiftIDs {
		if strings.TrimSpace(id) == "" {
			return []string{"shift_ids must not contain empty entries"}
		}
	}
	return nil
}

// BulkShiftsResponse is the data payload for bulk signup and drop responses.
type BulkShiftsResponse struct {
	Outcome   domain.BulkOutcome `json:"outcome"`
	Requested int                `json:"requested"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Failures  map[string]string  `json:"failures,omitempty"`
}

// BulkShiftsSuccessResponse is the success response envelope for POST /shifts/signup and POST /shifts/drop.
type BulkShiftsSuccessResponse struct {
	Data  *BulkShiftsResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SignUp godoc
// @Summary Sign up for one or more shifts
// @Description Claims the given shifts for the authenticated volunteer. Shifts are processed independently: a full or already-claimed shift fails on its own while the rest proceed.
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body controllers.BulkShiftsRequest true "Shift IDs to claim"
// @Success 200 {object} controllers.BulkShiftsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shifts/signup [post]
func (c *ShiftController) SignUp(w http.ResponseWriter, r *http.Request) {
	c.bulk(w, r, c.Service.BulkSignUp)
}

// Drop godoc
// @Summary Drop one or more shifts
// @Description Releases the given shifts for the authenticated volunteer. Shifts are processed independently.
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body controllers.BulkShiftsRequest true "Shift IDs to release"
// @Success 200 {object} controllers.BulkShiftsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /shifts/drop [post]
func (c *ShiftController) Drop(w http.ResponseWriter, r *http.Request) {
	c.bulk(w, r, c.Service.BulkDrop)
}

func (c *ShiftController) bulk(w http.ResponseWriter, r *http.Request, op bulkOp) {
	token, ok := middleware.PersonTokenFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req BulkShiftsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := op(r.Context(), req.ShiftIDs, token)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &BulkShiftsResponse{
		Outcome:   result.Outcome(),
		Requested: result.Requested,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Failures:  result.Failures,
	})
}

func (c *ShiftController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
	case errors.Is(err, domain.ErrLockTimeout):
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "signup is busy, please retry")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "shift not found")
	case errors.Is(err, domain.ErrShiftFull), errors.Is(err, domain.ErrAlreadySignedUp), errors.Is(err, domain.ErrNotSignedUp):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
