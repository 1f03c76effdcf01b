package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymtracker/internal/gymstats/plans"
	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=sessions_test

type sessionService interface {
	Build(ctx context.Context, userID, planID, dayID string) (*WorkoutSession, error)
	Save(ctx context.Context, session WorkoutSession) (*WorkoutSession, error)
	Get(ctx context.Context, userID, sessionID string) (*WorkoutSession, error)
	Delete(ctx context.Context, userID, sessionID string) error
	AddExtraExercise(session WorkoutSession, name string) (*WorkoutSession, error)
}

type BuildRequest struct {
	PlanID string `json:"planId"`
	DayID  string `json:"dayId"`
}

type ExtraExerciseRequest struct {
	Session WorkoutSession `json:"session"`
	Name    string         `json:"name"`
}

type Handler struct {
	service sessionService
}

func NewHandler(service sessionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/sessions/build", handler.HandleBuild).Methods("POST", "OPTIONS").Name("build-session")
	r.HandleFunc("/gymstats/sessions/extra", handler.HandleAddExtra).Methods("POST", "OPTIONS").Name("add-extra-exercise")
	r.HandleFunc("/gymstats/sessions", handler.HandleSave).Methods("POST", "OPTIONS").Name("save-session")
	r.HandleFunc("/gymstats/sessions/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/gymstats/sessions/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
}

func (handler *Handler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.build")
	defer span.End()

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid build request", http.StatusBadRequest)
		return
	}
	if req.PlanID == "" || req.DayID == "" {
		http.Error(w, "error, plan id or day id empty", http.StatusBadRequest)
		return
	}

	session, err := handler.service.Build(ctx, middleware.UserID(ctx), req.PlanID, req.DayID)
	if err != nil {
		writeError(w, "build session", err)
		return
	}

	writeJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleAddExtra(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.addExtra")
	defer span.End()

	var req ExtraExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid extra exercise request", http.StatusBadRequest)
		return
	}

	session, err := handler.service.AddExtraExercise(req.Session, req.Name)
	if err != nil {
		writeError(w, "add extra exercise", err)
		return
	}

	writeJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("save session, unmarshal json: %s", err)
		http.Error(w, "invalid session", http.StatusBadRequest)
		return
	}
	session.UserID = middleware.UserID(ctx)

	saved, err := handler.service.Save(ctx, session)
	if err != nil {
		writeError(w, "save session", err)
		return
	}

	status := http.StatusOK
	if session.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, saved, status)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.get")
	defer span.End()

	session, err := handler.service.Get(ctx, middleware.UserID(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get session", err)
		return
	}

	writeJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.sessions.delete")
	defer span.End()

	if err := handler.service.Delete(ctx, middleware.UserID(ctx), mux.Vars(r)["id"]); err != nil {
		writeError(w, "delete session", err)
		return
	}

	pkg.WriteResponse(w, pkg.ContentType.Text, "deleted", http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal session response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidSession):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, plans.ErrPlanNotFound), errors.Is(err, ErrDayNotFound):
		http.Error(w, "plan day not found", http.StatusNotFound)
	default:
		log.Errorf("failed to %s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}
