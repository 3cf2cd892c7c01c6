package logging

import (
	"io"
	"sync"
)

// ringSink keeps the last encoded log entries in memory so they can be
// served by the /logs endpoint. It implements zapcore.WriteSyncer.
type ringSink struct {
	mu      sync.Mutex
	entries [][]byte
	next    int
	full    bool
}

func newRingSink(size int) *ringSink {
	return &ringSink{entries: make([][]byte, size)}
}

// Write stores a copy of p, zap reuses its buffers.
func (s *ringSink) Write(p []byte) (int, error) {
	if len(s.entries) == 0 {
		return len(p), nil
	}
	entry := append([]byte(nil), p...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.next] = entry
	s.next++
	if s.next == len(s.entries) {
		s.next = 0
		s.full = true
	}
	return len(p), nil
}

func (s *ringSink) Sync() error { return nil }

func (s *ringSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return len(s.entries)
	}
	return s.next
}

// WriteTo writes the kept entries oldest first, or newest first when
// newestFirst is set.
func (s *ringSink) WriteTo(w io.Writer, newestFirst bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, oldest := s.next, 0
	if s.full {
		n, oldest = len(s.entries), s.next
	}
	for i := 0; i < n; i++ {
		k := i
		if newestFirst {
			k = n - 1 - i
		}
		if _, err := w.Write(s.entries[(oldest+k)%len(s.entries)]); err != nil {
			return err
		}
	}
	return nil
}
