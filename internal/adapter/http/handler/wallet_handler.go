package handler

import (
	"strconv"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/adapter/http/middleware"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// Success messages.
const (
	MsgWalletCreated     = "Wallet created successfully."
	MsgWalletUpdated     = "Wallet updated successfully."
	MsgWalletDeleted     = "Wallet deleted successfully."
	MsgTransferCompleted = "Transfer completed successfully."
)

// WalletHandler handles wallet, transfer and history endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// List handles GET /api/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	wallets, err := h.walletSvc.ListWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}
	response.OK(c, "", items)
}

// Get handles GET /api/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := walletIDParam(c)
	if !ok {
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", toWalletResponse(wallet))
}

// Create handles POST /api/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		DocumentID:     req.DocumentID,
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditSubject, strconv.FormatInt(wallet.ID, 10))
	response.Created(c, MsgWalletCreated, toWalletResponse(wallet))
}

// Update handles PUT /api/wallets/:id.
func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := walletIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.UpdateWallet(c.Request.Context(), ports.UpdateWalletRequest{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MsgWalletUpdated, toWalletResponse(wallet))
}

// Delete handles DELETE /api/wallets/:id.
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := walletIDParam(c)
	if !ok {
		return
	}

	if err := h.walletSvc.DeleteWallet(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, MsgWalletDeleted, nil)
}

// Transfer handles POST /api/wallets/transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		SourceWalletID: req.SourceWalletID,
		TargetWalletID: req.TargetWalletID,
		Amount:         req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditSubject, strconv.FormatInt(result.SourceWalletID, 10))
	response.OK(c, MsgTransferCompleted, dto.TransferResponse{
		SourceWalletID:      result.SourceWalletID,
		TargetWalletID:      result.TargetWalletID,
		Amount:              dto.FormatMoney(result.Amount),
		DebitTransactionID:  result.DebitTransactionID,
		CreditTransactionID: result.CreditTransactionID,
		CompletedAt:         dto.FormatTime(result.CompletedAt),
	})
}

// Transactions handles GET /api/wallets/:id/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	id, ok := walletIDParam(c)
	if !ok {
		return
	}

	var q dto.TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	from, err := dto.ParseDateParam(q.FromDate)
	if err != nil {
		response.Error(c, apperror.Validation("fromDate: "+err.Error()))
		return
	}
	to, err := dto.ParseDateParam(q.ToDate)
	if err != nil {
		response.Error(c, apperror.Validation("toDate: "+err.Error()))
		return
	}

	page, err := h.walletSvc.GetTransactions(c.Request.Context(), ports.TransactionQuery{
		WalletID: id,
		From:     from,
		To:       to,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, dto.TransactionResponse{
			ID:        t.ID,
			WalletID:  t.WalletID,
			Amount:    dto.FormatMoney(t.Amount),
			Type:      t.Type,
			CreatedAt: dto.FormatTime(t.CreatedAt),
		})
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalCount + page.PageSize - 1) / page.PageSize
	}

	response.OK(c, "", dto.TransactionListResponse{
		Items:      items,
		Total:      page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	})
}

func walletIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, apperror.Validation("Wallet id must be a positive integer."))
		return 0, false
	}
	return id, true
}

func toWalletResponse(w *ports.WalletView) dto.WalletResponse {
	resp := dto.WalletResponse{
		ID:         w.ID,
		DocumentID: w.DocumentID,
		Name:       w.Name,
		Balance:    dto.FormatMoney(w.Balance),
		CreatedAt:  dto.FormatTime(w.CreatedAt),
	}
	if w.UpdatedAt != nil {
		s := dto.FormatTime(*w.UpdatedAt)
		resp.UpdatedAt = &s
	}
	return resp
}
