package fitness

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=fitness_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fitfuture/fitfuture/internal/db"
	"github.com/fitfuture/fitfuture/internal/telemetry/metrics"
	"github.com/fitfuture/fitfuture/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type summarizer interface {
	ComputeSummary(ctx context.Context, userID int) (*Summary, error)
}

type Handler struct {
	summarizer summarizer
	metrics    *metrics.Manager
}

func NewHandler(summarizer summarizer, metrics *metrics.Manager) *Handler {
	return &Handler{
		summarizer: summarizer,
		metrics:    metrics,
	}
}

func (handler *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := handler.summarizer.ComputeSummary(r.Context(), userID)
	if err != nil {
		log.Errorf("failed to compute fitness summary for user %d: %s", userID, err)
		http.Error(w, "failed to compute fitness summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal fitness summary error: %s", err)
		http.Error(w, "marshal fitness summary error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSummariesComputed.Inc()

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func userIDFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	userIDStr := vars["userId"]
	if userIDStr == "" {
		return db.SeedUserID, nil
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		return 0, errors.New("error, user id invalid")
	}
	return userID, nil
}
