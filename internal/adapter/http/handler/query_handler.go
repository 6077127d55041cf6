package handler

import (
	"strconv"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// QueryHandler serves the projected read models.
type QueryHandler struct {
	queries ports.WalletQueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queries ports.WalletQueryService) *QueryHandler {
	return &QueryHandler{queries: queries}
}

// GetWallet handles GET /api/v1/wallets/:id.
func (h *QueryHandler) GetWallet(c *gin.Context) {
	walletID, ok := walletParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(view))
}

// ListEvents handles GET /api/v1/wallets/:id/events?limit=&offset=.
func (h *QueryHandler) ListEvents(c *gin.Context) {
	walletID, ok := walletParam(c)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		response.Error(c, err)
		return
	}

	items, total, err := h.queries.ListWalletEvents(c.Request.Context(), walletID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ActivityListResponse{
		Items: make([]dto.ActivityResponse, 0, len(items)),
		Total: total,
	}
	for i := range items {
		resp.Items = append(resp.Items, dto.NewActivityResponse(&items[i]))
	}
	response.OK(c, resp)
}

// GetPeriodTotals handles GET /api/v1/totals/:kind/:id.
func (h *QueryHandler) GetPeriodTotals(c *gin.Context) {
	subject := domain.Subject{Kind: domain.SubjectKind(c.Param("kind")), ID: c.Param("id")}

	totals, err := h.queries.GetCurrentPeriodTotal(c.Request.Context(), subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPeriodTotalsResponse(totals))
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(name + " must be an integer")
	}
	return n, nil
}
