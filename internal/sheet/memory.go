package sheet

import (
	"context"
	"sync"
)

// Memory keeps rows in process memory. Used in tests and as the zero-setup
// driver for local development.
type Memory struct {
	mu     sync.RWMutex
	header *Header
	rows   [][]string
	closed bool
}

func NewMemory() *Memory {
	return &Memory{rows: make([][]string, 0)}
}

func (m *Memory) RowCount(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrClosed
	}
	n := len(m.rows)
	if m.header != nil {
		n++
	}
	return n, nil
}

func (m *Memory) WriteHeader(_ context.Context, h Header) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	h = cloneHeader(h)
	m.header = &h
	return nil
}

func (m *Memory) Header(_ context.Context) (*Header, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.header == nil {
		return nil, nil
	}
	h := cloneHeader(*m.header)
	return &h, nil
}

func (m *Memory) Append(_ context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.rows = append(m.rows, cloneRow(row))
	return nil
}

func (m *Memory) Rows(_ context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = cloneRow(r)
	}
	return out, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func cloneHeader(h Header) Header {
	h.Cells = cloneRow(h.Cells)
	if h.Widths != nil {
		h.Widths = append([]int(nil), h.Widths...)
	}
	return h
}
