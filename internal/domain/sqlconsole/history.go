package sqlconsole

import "sync"

const DefaultHistorySize = 100

// History guarda las últimas N ejecuciones en memoria.
type History struct {
	mu   sync.Mutex
	buf  []Run
	next int
	full bool
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{buf: make([]Run, size)}
}

func (h *History) Add(r Run) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.next] = r
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

// Entries devuelve las ejecuciones, la más reciente primero.
func (h *History) Entries() []Run {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.next
	if h.full {
		n = len(h.buf)
	}

	out := make([]Run, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.next - i + len(h.buf)) % len(h.buf)
		out = append(out, h.buf[idx])
	}
	return out
}
