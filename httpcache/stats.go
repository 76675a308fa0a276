package httpcache

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonwraymond/depcache/cache"
)

// StatsResponse is the JSON body served by StatsHandler.
type StatsResponse struct {
	Timestamp string      `json:"timestamp"`
	Stats     cache.Stats `json:"stats"`
}

// StatsHandler returns an HTTP handler exposing the store's activity
// counters. Informational only; the counters are a point-in-time
// snapshot.
func StatsHandler(store *cache.MemoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := StatsResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Stats:     store.Stats(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
