package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymtracker/internal/middleware"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=plans_mocks_test.go -package=plans_test

type planService interface {
	New(userID string) Plan
	List(ctx context.Context, userID string) ([]Plan, error)
	Save(ctx context.Context, plan Plan) (*Plan, error)
	Reorder(ctx context.Context, userID string, sources []int, destination int) ([]Plan, error)
	Delete(ctx context.Context, userID string, indices []int) ([]Plan, error)
	AddDay(ctx context.Context, userID, planID string) (*Plan, error)
	DuplicateDay(ctx context.Context, userID, planID string, index int) (*Plan, error)
}

type ReorderRequest struct {
	Sources     []int `json:"sources"`
	Destination int   `json:"destination"`
}

type ListResponse struct {
	Plans []Plan `json:"plans"`
	Error string `json:"error,omitempty"`
}

type Handler struct {
	service planService
}

func NewHandler(service planService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/plans", handler.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	r.HandleFunc("/gymstats/plans", handler.HandleSave).Methods("POST", "OPTIONS").Name("save-plan")
	r.HandleFunc("/gymstats/plans/new", handler.HandleNew).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/gymstats/plans/order", handler.HandleReorder).Methods("PUT", "OPTIONS").Name("reorder-plans")
	r.HandleFunc("/gymstats/plans", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-plans")
	r.HandleFunc("/gymstats/plans/{id}/days", handler.HandleAddDay).Methods("POST", "OPTIONS").Name("add-plan-day")
	r.HandleFunc("/gymstats/plans/{id}/days/{index}/duplicate", handler.HandleDuplicateDay).Methods("POST", "OPTIONS").Name("duplicate-plan-day")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.list")
	defer span.End()

	plans, err := handler.service.List(ctx, middleware.UserID(ctx))
	if err != nil {
		log.Errorf("failed to list plans: %s", err)
		http.Error(w, "failed to list plans", http.StatusInternalServerError)
		return
	}

	handler.writePlans(w, plans, nil)
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.new")
	defer span.End()

	writeJSON(w, handler.service.New(middleware.UserID(ctx)), http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Tracef("save plan, unmarshal json: %s", err)
		http.Error(w, "invalid plan", http.StatusBadRequest)
		return
	}
	plan.UserID = middleware.UserID(ctx)

	saved, err := handler.service.Save(ctx, plan)
	if err != nil {
		writeError(w, "save plan", err)
		return
	}

	status := http.StatusOK
	if plan.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, saved, status)
}

func (handler *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.reorder")
	defer span.End()

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid reorder request", http.StatusBadRequest)
		return
	}
	if len(req.Sources) == 0 {
		http.Error(w, "error, sources empty", http.StatusBadRequest)
		return
	}

	plans, err := handler.service.Reorder(ctx, middleware.UserID(ctx), req.Sources, req.Destination)
	if plans == nil && err != nil {
		writeError(w, "reorder plans", err)
		return
	}

	handler.writePlans(w, plans, err)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.delete")
	defer span.End()

	indices, ok := pkg.ParseIndices(r.URL.Query().Get("indices"))
	if !ok {
		http.Error(w, "error, invalid indices", http.StatusBadRequest)
		return
	}

	plans, err := handler.service.Delete(ctx, middleware.UserID(ctx), indices)
	if err != nil && (plans == nil || errors.Is(err, ErrIndexOutOfRange)) {
		writeError(w, "delete plans", err)
		return
	}

	handler.writePlans(w, plans, err)
}

func (handler *Handler) HandleAddDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.addDay")
	defer span.End()

	planID := mux.Vars(r)["id"]
	plan, err := handler.service.AddDay(ctx, middleware.UserID(ctx), planID)
	if err != nil {
		writeError(w, "add day", err)
		return
	}

	writeJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleDuplicateDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.plans.duplicateDay")
	defer span.End()

	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, day index NaN", http.StatusBadRequest)
		return
	}

	plan, err := handler.service.DuplicateDay(ctx, middleware.UserID(ctx), vars["id"], index)
	if err != nil {
		writeError(w, "duplicate day", err)
		return
	}

	writeJSON(w, plan, http.StatusOK)
}

// partial failures still return the resulting list, with the error attached
func (handler *Handler) writePlans(w http.ResponseWriter, plans []Plan, err error) {
	if plans == nil {
		plans = []Plan{}
	}
	resp := ListResponse{Plans: plans}
	status := http.StatusOK
	if err != nil {
		log.Errorf("plans partially updated: %s", err)
		resp.Error = err.Error()
		status = http.StatusInternalServerError
	}
	writeJSON(w, resp, status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal plans response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidTemplate), errors.Is(err, ErrIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPlanNotFound):
		http.Error(w, "plan not found", http.StatusNotFound)
	default:
		log.Errorf("failed to %s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}
