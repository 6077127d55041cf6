package handler

import (
	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler exposes the wallet command endpoints.
type WalletHandler struct {
	commands ports.WalletCommandService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(commands ports.WalletCommandService) *WalletHandler {
	return &WalletHandler{commands: commands}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if !bind(c, &req) {
		return
	}

	// Retries that omit wallet_id get a fresh id here; the command id
	// lookup replays the wallet created first.
	walletID := uuid.New()
	if req.WalletID != "" {
		walletID = uuid.MustParse(req.WalletID)
	}

	result, err := h.commands.CreateWallet(c.Request.Context(), domain.CreateWallet{
		CommandID:     req.CommandID,
		WalletID:      walletID,
		UserID:        userID,
		MerchantID:    req.MerchantID,
		Currency:      req.Currency,
		WalletType:    domain.WalletType(req.WalletType),
		KYCLevel:      domain.KYCLevel(req.KYCLevel),
		Metadata:      req.Metadata,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Duplicate {
		response.OK(c, dto.NewCommandResponse(result))
		return
	}
	response.Created(c, dto.NewCommandResponse(result))
}

// Activate handles POST /api/v1/wallets/:id/activate.
func (h *WalletHandler) Activate(c *gin.Context) {
	h.changeStatus(c, func(id uuid.UUID, actor string, req dto.StatusChangeRequest) (*domain.CommandResult, error) {
		return h.commands.ActivateWallet(c.Request.Context(), domain.ActivateWallet{
			CommandID:     req.CommandID,
			WalletID:      id,
			ActorID:       actor,
			Reason:        req.Reason,
			CorrelationID: req.CorrelationID,
		})
	})
}

// Suspend handles POST /api/v1/wallets/:id/suspend.
func (h *WalletHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, func(id uuid.UUID, actor string, req dto.StatusChangeRequest) (*domain.CommandResult, error) {
		return h.commands.SuspendWallet(c.Request.Context(), domain.SuspendWallet{
			CommandID:     req.CommandID,
			WalletID:      id,
			ActorID:       actor,
			Reason:        req.Reason,
			CorrelationID: req.CorrelationID,
		})
	})
}

// Close handles POST /api/v1/wallets/:id/close.
func (h *WalletHandler) Close(c *gin.Context) {
	h.changeStatus(c, func(id uuid.UUID, actor string, req dto.StatusChangeRequest) (*domain.CommandResult, error) {
		return h.commands.CloseWallet(c.Request.Context(), domain.CloseWallet{
			CommandID:     req.CommandID,
			WalletID:      id,
			ActorID:       actor,
			Reason:        req.Reason,
			CorrelationID: req.CorrelationID,
		})
	})
}

func (h *WalletHandler) changeStatus(c *gin.Context, run func(uuid.UUID, string, dto.StatusChangeRequest) (*domain.CommandResult, error)) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	walletID, ok := walletParam(c)
	if !ok {
		return
	}
	var req dto.StatusChangeRequest
	if !bind(c, &req) {
		return
	}

	result, err := run(walletID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	accepted(c, result)
}

// Credit handles POST /api/v1/wallets/:id/credit.
func (h *WalletHandler) Credit(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	walletID, ok := walletParam(c)
	if !ok {
		return
	}
	var req dto.CreditRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.commands.CreditWallet(c.Request.Context(), domain.CreditWallet{
		CommandID:     req.CommandID,
		WalletID:      walletID,
		ActorID:       userID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Source:        domain.CreditSource(req.Source),
		Reference:     req.Reference,
		Description:   req.Description,
		Metadata:      req.Metadata,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	accepted(c, result)
}

// Debit handles POST /api/v1/wallets/:id/debit.
func (h *WalletHandler) Debit(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	walletID, ok := walletParam(c)
	if !ok {
		return
	}
	var req dto.DebitRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.commands.DebitWallet(c.Request.Context(), domain.DebitWallet{
		CommandID:     req.CommandID,
		WalletID:      walletID,
		ActorID:       userID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Destination:   domain.DebitDestination(req.Destination),
		Reference:     req.Reference,
		Description:   req.Description,
		Metadata:      req.Metadata,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	accepted(c, result)
}

// Transfer handles POST /api/v1/transfers.
func (h *WalletHandler) Transfer(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.commands.TransferFunds(c.Request.Context(), domain.TransferFunds{
		CommandID:           req.CommandID,
		SourceWalletID:      uuid.MustParse(req.SourceWalletID),
		DestinationWalletID: uuid.MustParse(req.DestinationWalletID),
		ActorID:             userID,
		Amount:              req.Amount,
		Currency:            req.Currency,
		Reference:           req.Reference,
		Description:         req.Description,
		CorrelationID:       req.CorrelationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TransferResponse{CorrelationID: result.CorrelationID}
	if result.Debit != nil {
		resp.Debit = dto.NewCommandResponse(result.Debit)
	}
	if result.Credit != nil {
		resp.Credit = dto.NewCommandResponse(result.Credit)
	}
	if result.Debit != nil && result.Debit.Duplicate && result.Credit != nil && result.Credit.Duplicate {
		response.OK(c, resp)
		return
	}
	response.Accepted(c, resp)
}

// principal returns the authenticated user id or writes a 401.
func principal(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return "", false
	}
	return userID, true
}

func walletParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// bind decodes and validates the JSON body, then sanitizes it.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(req)
	return true
}

// accepted answers 202 for new writes and 200 for replays of a known command.
func accepted(c *gin.Context, result *domain.CommandResult) {
	if result.Duplicate {
		response.OK(c, dto.NewCommandResponse(result))
		return
	}
	response.Accepted(c, dto.NewCommandResponse(result))
}
