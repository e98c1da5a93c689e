package health

import (
	"context"
	"net/http"
	"time"

	"github.com/mytheresa/stock-tracker/app/responses"
	"github.com/mytheresa/stock-tracker/pkg/db"
	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
	"github.com/mytheresa/stock-tracker/pkg/logger"
)

const readyTimeout = 2 * time.Second

type statusResponse struct {
	Status string `json:"status"`
}

func HandleLive(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, statusResponse{Status: "live"})
}

// HandleReady reports ready only while the database answers a ping.
func HandleReady(pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		responses.WriteSuccess(w, statusResponse{Status: "ready"})
	}
}
