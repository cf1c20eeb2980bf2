package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/go-chi/chi/v5"

	"github.com/hai-on-op/hai-staking-service/internal/types"
)

type amountRequest struct {
	Amount string `json:"amount"`
}

type txResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
	Status      uint64 `json:"status"`
}

func newTxResponse(receipt *gethtypes.Receipt) txResponse {
	resp := txResponse{
		TxHash:  receipt.TxHash.Hex(),
		GasUsed: receipt.GasUsed,
		Status:  receipt.Status,
	}
	if receipt.BlockNumber != nil {
		resp.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return resp
}

func (s *Server) healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := addressParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	state, err := s.svc.GetAccount(r.Context(), account)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	account, err := addressParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	summary, err := s.svc.BuildSummary(r.Context(), account, q.Get("stake"), q.Get("unstake"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) getApr(w http.ResponseWriter, r *http.Request) {
	var account types.Address
	if raw := r.URL.Query().Get("address"); raw != "" {
		parsed, err := types.ParseAddress(raw)
		if err != nil {
			writeServiceError(w, r, fmt.Errorf("%w: %s", errInvalidAddress, raw))
			return
		}
		account = parsed
	}
	apr, err := s.svc.GetApr(r.Context(), account)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apr)
}

func (s *Server) getIncentives(w http.ResponseWriter, r *http.Request) {
	account, err := addressParam(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	claims, err := s.svc.GetClaimData(r.Context(), account)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, claims)
}

func (s *Server) stake(w http.ResponseWriter, r *http.Request) {
	s.handleAmountTx(w, r, s.svc.Stake)
}

func (s *Server) initiateWithdrawal(w http.ResponseWriter, r *http.Request) {
	s.handleAmountTx(w, r, s.svc.InitiateWithdrawal)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.handleTx(w, r, s.svc.Withdraw)
}

func (s *Server) cancelWithdrawal(w http.ResponseWriter, r *http.Request) {
	s.handleTx(w, r, s.svc.CancelWithdrawal)
}

func (s *Server) claimRewards(w http.ResponseWriter, r *http.Request) {
	s.handleTx(w, r, s.svc.ClaimRewards)
}

func (s *Server) claimAll(w http.ResponseWriter, r *http.Request) {
	s.handleTx(w, r, s.svc.ClaimAll)
}

func (s *Server) claim(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	s.handleTx(w, r, func(ctx context.Context) (*gethtypes.Receipt, error) {
		return s.svc.Claim(ctx, symbol)
	})
}

func (s *Server) handleAmountTx(
	w http.ResponseWriter, r *http.Request, send func(ctx context.Context, amt string) (*gethtypes.Receipt, error),
) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid payload")
		return
	}
	s.handleTx(w, r, func(ctx context.Context) (*gethtypes.Receipt, error) {
		return send(ctx, strings.TrimSpace(req.Amount))
	})
}

func (s *Server) handleTx(
	w http.ResponseWriter, r *http.Request, send func(ctx context.Context) (*gethtypes.Receipt, error),
) {
	receipt, err := send(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newTxResponse(receipt))
}

func addressParam(r *http.Request) (types.Address, error) {
	raw := chi.URLParam(r, "address")
	account, err := types.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errInvalidAddress, raw)
	}
	return account, nil
}
