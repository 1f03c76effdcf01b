package library

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymtracker/internal/gymstats/names"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=library_mocks_test.go -package=library_test

type libraryService interface {
	List(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string) ([]string, error)
	Remove(ctx context.Context, name string) error
}

type Handler struct {
	service libraryService
}

func NewHandler(service libraryService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/library", handler.HandleList).Methods("GET", "OPTIONS").Name("list-library")
	r.HandleFunc("/gymstats/library/search", handler.HandleSearch).Methods("GET", "OPTIONS").Name("search-library")
	r.HandleFunc("/gymstats/library/{name}", handler.HandleRemove).Methods("DELETE", "OPTIONS").Name("remove-library-name")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.library.list")
	defer span.End()

	list, err := handler.service.List(ctx)
	if err != nil {
		log.Errorf("failed to list exercise names: %s", err)
		http.Error(w, "failed to list exercise names", http.StatusInternalServerError)
		return
	}

	writeNames(w, list)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.library.search")
	defer span.End()

	found, err := handler.service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		log.Errorf("failed to search exercise names: %s", err)
		http.Error(w, "failed to search exercise names", http.StatusInternalServerError)
		return
	}

	writeNames(w, found)
}

func (handler *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.library.remove")
	defer span.End()

	name := mux.Vars(r)["name"]
	if err := handler.service.Remove(ctx, name); err != nil {
		if errors.Is(err, names.ErrEmptyName) {
			http.Error(w, "error, name empty", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to remove exercise name [%s]: %s", name, err)
		http.Error(w, "failed to remove exercise name", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, pkg.ContentType.Text, "removed", http.StatusOK)
}

func writeNames(w http.ResponseWriter, list []string) {
	if list == nil {
		list = []string{}
	}
	namesJson, err := json.Marshal(list)
	if err != nil {
		log.Errorf("failed to marshal exercise names: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, namesJson)
}
