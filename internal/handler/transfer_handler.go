package handler

import (
	"net/http"
	"time"

	"vbanking/internal/errors"
	"vbanking/internal/service"

	"github.com/shopspring/decimal"
)

type TransferHandler struct {
	transferService *service.TransferService
}

func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

type TransferRequest struct {
	FromDocument string `json:"from_document"`
	ToDocument   string `json:"to_document"`
	// Amount is a decimal string so no precision is lost to float parsing.
	Amount string `json:"amount"`
}

type TransferResponse struct {
	ID           string    `json:"id"`
	FromDocument string    `json:"from_document"`
	ToDocument   string    `json:"to_document"`
	Amount       string    `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
}

func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppErrorf(errors.InvalidArgument, "invalid amount %q", req.Amount))
		return
	}

	audit, err := h.transferService.Transfer(r.Context(), &service.TransferRequest{
		FromDocument: req.FromDocument,
		ToDocument:   req.ToDocument,
		Amount:       amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		ID:           audit.ID.String(),
		FromDocument: audit.FromDocument,
		ToDocument:   audit.ToDocument,
		Amount:       audit.Amount.StringFixed(2),
		Timestamp:    audit.Timestamp,
	})
}
