package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymtracker/internal/gymstats/sessions"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=history_mocks_test.go -package=history_test

type historyService interface {
	Calendar(ctx context.Context, userID string) ([]CalendarDayView, error)
	SessionsOn(ctx context.Context, userID, date string) ([]SessionSummary, error)
	ExerciseHistory(ctx context.Context, userID, exerciseName string, ascending bool) (Entries, error)
	Progress(ctx context.Context, userID, exerciseName string) ([]ProgressPoint, error)
	LastExercise(ctx context.Context, userID, exerciseName string) (*LastExercise, error)
	LiveView(ctx context.Context, session sessions.WorkoutSession) (*LiveView, error)
}

type Handler struct {
	service historyService
}

func NewHandler(service historyService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/history/calendar", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("history-calendar")
	r.HandleFunc("/gymstats/history/day/{date}", handler.HandleDay).Methods("GET", "OPTIONS").Name("history-day")
	r.HandleFunc("/gymstats/history/exercise/{name}", handler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("history-exercise")
	r.HandleFunc("/gymstats/history/exercise/{name}/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("history-exercise-progress")
	r.HandleFunc("/gymstats/history/exercise/{name}/last", handler.HandleLast).Methods("GET", "OPTIONS").Name("history-exercise-last")
	r.HandleFunc("/gymstats/sessions/live", handler.HandleLive).Methods("POST", "OPTIONS").Name("live-session")
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.calendar")
	defer span.End()

	calendar, err := handler.service.Calendar(ctx, middleware.UserID(ctx))
	if err != nil {
		log.Errorf("failed to get calendar: %s", err)
		http.Error(w, "failed to get calendar", http.StatusInternalServerError)
		return
	}

	writeJSON(w, calendar)
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.day")
	defer span.End()

	date := mux.Vars(r)["date"]
	span.SetAttributes(attribute.String("date", date))

	summaries, err := handler.service.SessionsOn(ctx, middleware.UserID(ctx), date)
	if errors.Is(err, ErrInvalidDate) {
		log.Tracef("failed to get sessions on [%s]: %s", date, err)
		http.Error(w, "failed to get sessions, date must be yyyy-mm-dd", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("failed to get sessions on [%s]: %s", date, err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summaries)
}

func (handler *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.exercise")
	defer span.End()

	name := mux.Vars(r)["name"]
	order := r.URL.Query().Get("order")
	if order != "" && order != "asc" && order != "desc" {
		http.Error(w, "error, order must be asc or desc", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("exercise.name", name), attribute.String("order", order))

	entries, err := handler.service.ExerciseHistory(ctx, middleware.UserID(ctx), name, order == "asc")
	if err != nil {
		log.Errorf("failed to get exercise history [%s]: %s", name, err)
		http.Error(w, "failed to get exercise history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = Entries{}
	}

	writeJSON(w, entries)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.progress")
	defer span.End()

	name := mux.Vars(r)["name"]
	points, err := handler.service.Progress(ctx, middleware.UserID(ctx), name)
	if err != nil {
		log.Errorf("failed to get exercise progress [%s]: %s", name, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, points)
}

func (handler *Handler) HandleLast(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.last")
	defer span.End()

	name := mux.Vars(r)["name"]
	last, err := handler.service.LastExercise(ctx, middleware.UserID(ctx), name)
	if err != nil {
		log.Errorf("failed to get last exercise [%s]: %s", name, err)
		http.Error(w, "failed to get last exercise", http.StatusInternalServerError)
		return
	}

	writeJSON(w, last)
}

func (handler *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.history.live")
	defer span.End()

	var session sessions.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		http.Error(w, "invalid session", http.StatusBadRequest)
		return
	}
	session.UserID = middleware.UserID(ctx)

	view, err := handler.service.LiveView(ctx, session)
	if err != nil {
		log.Errorf("failed to evaluate live session: %s", err)
		http.Error(w, "failed to evaluate live session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal history response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, respJson)
}
