package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Validation and lookup messages returned to API callers.
const (
	MsgNameAndDocumentRequired = "Name and document are required."
	MsgNameRequired            = "Name is required."
	MsgNegativeInitialBalance  = "Initial balance must be zero or positive."
	MsgAmountNotPositive       = "Amount must be greater than zero."
	MsgAmountPrecision         = "Amount supports at most two decimal places."
	MsgSourceNotFound          = "Source wallet does not exist."
	MsgTargetNotFound          = "Target wallet does not exist."
	MsgSameWallet              = "Source and target wallets must differ."
)

// moneyScale is the number of fractional digits balances are stored with.
const moneyScale = 2

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	events     ports.EventPublisher
	locks      *walletLocks
	now        func() time.Time
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
// events may be nil, in which case no transfer events are published.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	events ports.EventPublisher,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		events:     events,
		locks:      newWalletLocks(),
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// ListWallets returns every wallet.
func (s *WalletServiceImpl) ListWallets(ctx context.Context) ([]ports.WalletView, error) {
	wallets, err := s.walletRepo.GetAll(ctx)
	if err != nil {
		return nil, s.storeFault("list wallets", err)
	}

	views := make([]ports.WalletView, 0, len(wallets))
	for i := range wallets {
		views = append(views, toWalletView(&wallets[i]))
	}
	return views, nil
}

// GetWallet returns a single wallet or a NotFound error.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, id int64) (*ports.WalletView, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFault("get wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(id)
	}

	view := toWalletView(wallet)
	return &view, nil
}

// CreateWallet validates the input and persists a new wallet.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*ports.WalletView, error) {
	documentID := strings.TrimSpace(req.DocumentID)
	name := strings.TrimSpace(req.Name)
	if documentID == "" || name == "" {
		return nil, apperror.InvalidArgument(MsgNameAndDocumentRequired)
	}
	if req.InitialBalance.IsNegative() {
		return nil, apperror.InvalidArgument(MsgNegativeInitialBalance)
	}
	if !hasMoneyScale(req.InitialBalance) {
		return nil, apperror.InvalidArgument(MsgAmountPrecision)
	}

	wallet := &domain.Wallet{
		DocumentID: documentID,
		Name:       name,
		Balance:    req.InitialBalance,
		CreatedAt:  s.now(),
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, s.storeFault("create wallet", err)
	}

	s.log.Info().
		Int64("wallet_id", wallet.ID).
		Str("document_id", wallet.DocumentID).
		Str("initial_balance", wallet.Balance.StringFixed(moneyScale)).
		Msg("wallet created")

	view := toWalletView(wallet)
	return &view, nil
}

// UpdateWallet renames a wallet. The balance is not touched.
func (s *WalletServiceImpl) UpdateWallet(ctx context.Context, req ports.UpdateWalletRequest) (*ports.WalletView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.InvalidArgument(MsgNameRequired)
	}

	unlock, err := s.locks.acquire(ctx, req.ID)
	if err != nil {
		return nil, apperror.Timeout(fmt.Errorf("acquire wallet lock: %w", err))
	}
	defer unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, s.storeFault("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.ID)
	if err != nil {
		return nil, s.storeFault("lock wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(req.ID)
	}

	wallet.Rename(name, s.now())
	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return nil, s.storeFault("update wallet", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.storeFault("commit tx", err)
	}

	s.log.Info().Int64("wallet_id", wallet.ID).Msg("wallet renamed")

	view := toWalletView(wallet)
	return &view, nil
}

// DeleteWallet removes a wallet. Its transaction history is left in place.
func (s *WalletServiceImpl) DeleteWallet(ctx context.Context, id int64) error {
	unlock, err := s.locks.acquire(ctx, id)
	if err != nil {
		return apperror.Timeout(fmt.Errorf("acquire wallet lock: %w", err))
	}
	defer unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return s.storeFault("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return s.storeFault("lock wallet", err)
	}
	if wallet == nil {
		return apperror.ErrWalletNotFound(id)
	}

	if err := s.walletRepo.Delete(ctx, dbTx, id); err != nil {
		return s.storeFault("delete wallet", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return s.storeFault("commit tx", err)
	}

	s.log.Info().Int64("wallet_id", id).Msg("wallet deleted")
	return nil
}

// Transfer moves amount from the source wallet to the target wallet.
//
// Preconditions are checked in this order, each one short-circuiting:
// positive amount, source exists, source balance covers amount, target exists.
// Both wallets are locked in ascending id order before any of them is read,
// and the two balance updates plus the debit/credit entries commit as one unit.
func (s *WalletServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.InvalidArgument(MsgAmountNotPositive)
	}
	if !hasMoneyScale(req.Amount) {
		return nil, apperror.InvalidArgument(MsgAmountPrecision)
	}

	unlock, err := s.locks.acquirePair(ctx, req.SourceWalletID, req.TargetWalletID)
	if err != nil {
		return nil, apperror.Timeout(fmt.Errorf("acquire wallet locks: %w", err))
	}
	defer unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, s.storeFault("begin tx", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	source, target, err := s.lockTransferWallets(ctx, dbTx, req.SourceWalletID, req.TargetWalletID)
	if err != nil {
		return nil, err
	}

	if source == nil {
		return nil, apperror.NotFound(MsgSourceNotFound)
	}
	if !source.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}
	if target == nil {
		return nil, apperror.NotFound(MsgTargetNotFound)
	}
	if source.ID == target.ID {
		return nil, apperror.InvalidArgument(MsgSameWallet)
	}

	now := s.now()
	source.Debit(req.Amount, now)
	target.Credit(req.Amount, now)

	if err := s.walletRepo.Update(ctx, dbTx, source); err != nil {
		return nil, s.storeFault("update source wallet", err)
	}
	if err := s.walletRepo.Update(ctx, dbTx, target); err != nil {
		return nil, s.storeFault("update target wallet", err)
	}

	debit, credit := domain.NewTransferPair(source.ID, target.ID, req.Amount, s.now())
	if err := s.txRepo.Create(ctx, dbTx, debit); err != nil {
		return nil, s.storeFault("record debit", err)
	}
	if err := s.txRepo.Create(ctx, dbTx, credit); err != nil {
		return nil, s.storeFault("record credit", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.storeFault("commit tx", err)
	}

	s.log.Info().
		Int64("source_wallet_id", source.ID).
		Int64("target_wallet_id", target.ID).
		Str("amount", req.Amount.StringFixed(moneyScale)).
		Msg("transfer completed")

	s.publishTransfer(ctx, &domain.TransferCompleted{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         req.Amount,
		CompletedAt:    debit.CreatedAt,
	})

	return &ports.TransferResult{
		SourceWalletID:      source.ID,
		TargetWalletID:      target.ID,
		Amount:              req.Amount,
		DebitTransactionID:  debit.ID,
		CreditTransactionID: credit.ID,
		CompletedAt:         debit.CreatedAt,
	}, nil
}

// lockTransferWallets row-locks both wallets in ascending id order.
// A missing wallet comes back as nil; the caller decides which error applies.
func (s *WalletServiceImpl) lockTransferWallets(ctx context.Context, dbTx pgx.Tx, sourceID, targetID int64) (*domain.Wallet, *domain.Wallet, error) {
	if sourceID == targetID {
		wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, sourceID)
		if err != nil {
			return nil, nil, s.storeFault("lock wallet", err)
		}
		return wallet, wallet, nil
	}

	firstID, secondID := sourceID, targetID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, nil, s.storeFault("lock wallet", err)
	}
	second, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, nil, s.storeFault("lock wallet", err)
	}

	if firstID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *WalletServiceImpl) publishTransfer(ctx context.Context, event *domain.TransferCompleted) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransferCompleted(ctx, event); err != nil {
		s.log.Warn().
			Err(err).
			Int64("source_wallet_id", event.SourceWalletID).
			Int64("target_wallet_id", event.TargetWalletID).
			Msg("failed to publish transfer event")
	}
}

// GetTransactions returns one page of a wallet's history, most recent first.
// An unknown wallet yields an empty page. A page below 1 or a non-positive
// page size also yields an empty page.
func (s *WalletServiceImpl) GetTransactions(ctx context.Context, query ports.TransactionQuery) (*ports.TransactionPage, error) {
	all, err := s.txRepo.GetByWalletID(ctx, query.WalletID)
	if err != nil {
		return nil, s.storeFault("get transactions", err)
	}

	matched := make([]domain.Transaction, 0, len(all))
	for _, t := range all {
		if query.From != nil && t.CreatedAt.Before(*query.From) {
			continue
		}
		if query.To != nil && t.CreatedAt.After(*query.To) {
			continue
		}
		matched = append(matched, t)
	}

	slices.SortFunc(matched, func(a, b domain.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	page := &ports.TransactionPage{
		Items:      []ports.TransactionView{},
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: len(matched),
	}
	if query.Page < 1 || query.PageSize <= 0 {
		return page, nil
	}
	if query.Page-1 > len(matched)/query.PageSize {
		return page, nil
	}

	start := (query.Page - 1) * query.PageSize
	end := min(start+query.PageSize, len(matched))
	for i := start; i < end; i++ {
		page.Items = append(page.Items, toTransactionView(&matched[i]))
	}
	return page, nil
}

func (s *WalletServiceImpl) storeFault(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("wallet store failure")
	return apperror.StoreUnavailable(fmt.Errorf("%s: %w", op, err))
}

func hasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(moneyScale))
}

func toWalletView(w *domain.Wallet) ports.WalletView {
	return ports.WalletView{
		ID:         w.ID,
		DocumentID: w.DocumentID,
		Name:       w.Name,
		Balance:    w.Balance,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func toTransactionView(t *domain.Transaction) ports.TransactionView {
	return ports.TransactionView{
		ID:        t.ID,
		WalletID:  t.WalletID,
		Amount:    t.Amount,
		Type:      string(t.Type),
		CreatedAt: t.CreatedAt,
	}
}
