package memory

import (
	"context"
	"errors"
	"sync"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errSQLUnsupported = errors.New("memory: SQL is not supported")

// Tx is a unit of work over a Store. Repository writes made through it are
// staged and become visible to other readers only when Commit applies them
// under the store lock, all at once.
type Tx struct {
	store *Store

	mu      sync.Mutex
	updated map[int64]domain.Wallet
	deleted map[int64]struct{}
	entries []domain.Transaction
	closed  bool
}

// Transactor implements ports.DBTransactor for the in-memory backend.
type Transactor struct {
	store *Store
}

// NewTransactor creates a Transactor over the store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

// Begin starts a new unit of work.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		store:   t.store,
		updated: make(map[int64]domain.Wallet),
		deleted: make(map[int64]struct{}),
	}, nil
}

func asTx(tx pgx.Tx) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt == nil {
		return nil, errors.New("memory: transaction was not started by this backend")
	}
	return mt, nil
}

// lookup returns the wallet as seen from inside the transaction.
func (t *Tx) lookup(id int64) (domain.Wallet, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.Wallet{}, false, pgx.ErrTxClosed
	}
	if _, gone := t.deleted[id]; gone {
		return domain.Wallet{}, false, nil
	}
	if w, ok := t.updated[id]; ok {
		return w, true, nil
	}
	w, ok := t.store.wallet(id)
	return w, ok, nil
}

func (t *Tx) stageUpdate(w domain.Wallet) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.updated[w.ID] = w
	return nil
}

func (t *Tx) stageDelete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	delete(t.updated, id)
	t.deleted[id] = struct{}{}
	return nil
}

func (t *Tx) stageEntry(e domain.Transaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.entries = append(t.entries, e)
	return nil
}

// Commit applies every staged write. Updates to wallets deleted by another
// transaction in the meantime are dropped.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	if err := ctx.Err(); err != nil {
		t.closed = true
		return err
	}
	t.closed = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range t.deleted {
		delete(s.wallets, id)
	}
	for id, w := range t.updated {
		if _, ok := s.wallets[id]; ok {
			s.wallets[id] = w
		}
	}
	s.transactions = append(s.transactions, t.entries...)
	return nil
}

// Rollback discards staged writes.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.updated = nil
	t.deleted = nil
	t.entries = nil
	return nil
}

// Begin on a Tx would start a savepoint, which the backend does not model.
func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errSQLUnsupported
}

func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errSQLUnsupported
}

func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *Tx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errSQLUnsupported
}

func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errSQLUnsupported
}

func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errSQLUnsupported
}

func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{err: errSQLUnsupported}
}

func (t *Tx) Conn() *pgx.Conn { return nil }

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }
