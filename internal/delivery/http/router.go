package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"shmirascheduler/internal/delivery/http/controllers"
	"shmirascheduler/internal/delivery/http/middleware"
	"shmirascheduler/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	shiftController *controllers.ShiftController,
	eventController *controllers.EventController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Volunteer portal
	mux.HandleFunc("GET /shifts", requireAuth(shiftController.ListShifts))
	mux.HandleFunc("GET /shifts/mine", requireAuth(shiftController.ListMyShifts))
	mux.HandleFunc("POST /shifts/signup", requireAuth(shiftController.SignUp))
	mux.HandleFunc("POST /shifts/drop", requireAuth(shiftController.Drop))

	// Notice intake
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /locations", requireAuth(eventController.ListLocations))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
