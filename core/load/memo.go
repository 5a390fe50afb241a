package load

import (
	"context"
	"errors"
	"sync"

	"github.com/huangsam/ytdash/schema"
)

// LoadFunc produces a dataset.
type LoadFunc func(ctx context.Context) (*schema.Dataset, error)

// Memo runs a LoadFunc until it completes and hands out the same dataset to
// every caller. A failed load is memoized too, except when the caller's
// context was cancelled or timed out; the next caller retries then.
type Memo struct {
	mu   sync.Mutex
	done bool
	fn   LoadFunc
	data *schema.Dataset
	err  error
}

// NewMemo wraps fn.
func NewMemo(fn LoadFunc) *Memo {
	return &Memo{fn: fn}
}

// Get returns the dataset, loading it on first use.
func (m *Memo) Get(ctx context.Context) (*schema.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return m.data, m.err
	}
	data, err := m.fn(ctx)
	if err != nil && isContextError(err) {
		return nil, err
	}
	m.data, m.err, m.done = data, err, true
	return m.data, m.err
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Preloaded returns a memo that always yields data.
func Preloaded(data *schema.Dataset) *Memo {
	return &Memo{data: data, done: true}
}
