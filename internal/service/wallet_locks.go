package service

import (
	"context"
	"sync"
)

// walletLocks serializes balance and name mutations per wallet inside one process.
// Slots are reference counted so idle wallets do not accumulate entries.
type walletLocks struct {
	mu    sync.Mutex
	slots map[int64]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newWalletLocks() *walletLocks {
	return &walletLocks{slots: make(map[int64]*lockSlot)}
}

// acquire blocks until the wallet is free or ctx is done.
func (l *walletLocks) acquire(ctx context.Context, id int64) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[id]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[id] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			l.release(id, slot)
		}, nil
	case <-ctx.Done():
		l.release(id, slot)
		return nil, ctx.Err()
	}
}

// acquirePair locks both wallets in ascending id order so opposite
// transfers between the same pair cannot deadlock.
func (l *walletLocks) acquirePair(ctx context.Context, a, b int64) (func(), error) {
	if a == b {
		return l.acquire(ctx, a)
	}
	first, second := a, b
	if first > second {
		first, second = second, first
	}

	unlockFirst, err := l.acquire(ctx, first)
	if err != nil {
		return nil, err
	}
	unlockSecond, err := l.acquire(ctx, second)
	if err != nil {
		unlockFirst()
		return nil, err
	}
	return func() {
		unlockSecond()
		unlockFirst()
	}, nil
}

func (l *walletLocks) release(id int64, slot *lockSlot) {
	l.mu.Lock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, id)
	}
	l.mu.Unlock()
}

// size reports the number of live slots.
func (l *walletLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
