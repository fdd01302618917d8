package datasets

import (
	"encoding/json"
	"net/http"

	"github.com/fitfuture/fitfuture/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	responseCacheSize = 1024 * 1024
	responseCacheTTL  = 300 // seconds
)

var snapshotsCacheKey = []byte("datasets-snapshots")

type snapshotter interface {
	Snapshots() map[Key]Snapshot
}

// Handler serves the dataset snapshots. The snapshots never change within
// a process, so the marshaled response is kept in an in-memory cache.
type Handler struct {
	datasets      snapshotter
	responseCache *freecache.Cache
}

func NewHandler(datasets snapshotter) *Handler {
	return &Handler{
		datasets:      datasets,
		responseCache: freecache.NewCache(responseCacheSize),
	}
}

func (handler *Handler) HandleGetSnapshots(w http.ResponseWriter, r *http.Request) {
	if cached, err := handler.responseCache.Get(snapshotsCacheKey); err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	snapshotsJson, err := json.Marshal(handler.datasets.Snapshots())
	if err != nil {
		log.Errorf("marshal dataset snapshots error: %s", err)
		http.Error(w, "marshal dataset snapshots error", http.StatusInternalServerError)
		return
	}

	if err := handler.responseCache.Set(snapshotsCacheKey, snapshotsJson, responseCacheTTL); err != nil {
		log.Warnf("cache dataset snapshots: %s", err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, snapshotsJson)
}
