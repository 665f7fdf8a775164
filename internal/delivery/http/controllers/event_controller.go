package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shmirascheduler/internal/delivery/http/helpers"
	"shmirascheduler/internal/domain"
)

type EventController struct {
	Logger    *slog.Logger
	Service   domain.EventService
	Locations domain.LocationRepository
}

func NewEventController(logger *slog.Logger, svc domain.EventService, locations domain.LocationRepository) *EventController {
	return &EventController{
		Logger:    logger,
		Service:   svc,
		Locations: locations,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	DeceasedName   string    `json:"deceased_name"`
	LocationName   string    `json:"location_name"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Pronoun        string    `json:"pronoun"`
	VerbPhrase     string    `json:"verb_phrase"`
	PersonalInfo   string    `json:"personal_info"`
	SubmitterEmail string    `json:"submitter_email"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	event := r.toDomain()
	return event.Validate()
}

func (r *CreateEventRequest) toDomain() *domain.Event {
	event := domain.NewEvent(r.DeceasedName, r.LocationName, r.StartAt, r.EndAt)
	event.Pronoun = r.Pronoun
	event.VerbPhrase = r.VerbPhrase
	event.PersonalInfo = r.PersonalInfo
	event.SubmitterEmail = r.SubmitterEmail
	return event
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Submit a death notice
// @Description Records a new event and immediately derives its shifts and notification mappings. Notifications themselves go out on the next dispatch pass.
// @Tags events
// @Accept json
// @Produce json
// @Param request body controllers.CreateEventRequest true "Event details"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListLocationsSuccessResponse is the success response envelope for GET /locations.
type ListLocationsSuccessResponse struct {
	Data  []*domain.Location `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListLocations godoc
// @Summary List shmira locations
// @Description Returns the roster of locations notices can reference.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListLocationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /locations [get]
func (c *EventController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.Locations.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, locations)
}
