package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hai-on-op/hai-staking-service/internal/clients/stakingclient"
	"github.com/hai-on-op/hai-staking-service/internal/services"
	"github.com/hai-on-op/hai-staking-service/pkg/amount"
)

var errInvalidAddress = errors.New("invalid address")

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// statusOf maps service errors onto an HTTP status and error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, amount.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, errInvalidAddress):
		return http.StatusBadRequest, "INVALID_ADDRESS"
	case errors.Is(err, stakingclient.ErrMissingSigner):
		return http.StatusForbidden, "MISSING_SIGNER"
	case errors.Is(err, stakingclient.ErrTxReverted):
		return http.StatusConflict, "TX_REVERTED"
	case errors.Is(err, stakingclient.ErrTxUnconfirmed):
		return http.StatusGatewayTimeout, "TX_UNCONFIRMED"
	case errors.Is(err, services.ErrNothingToClaim):
		return http.StatusConflict, "NOTHING_TO_CLAIM"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = http.StatusText(status)
	}
	writeError(w, r, status, code, message)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{ErrorCode: code, Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to encode response")
	}
}
