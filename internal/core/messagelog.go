package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of entries a log keeps unless told otherwise.
const DefaultCapacity = 10

// TypingLock selects how long a typed append holds the log.
type TypingLock int

const (
	// TypingLockHold keeps the log locked for the whole typing animation.
	// Every other reader and writer waits until the message is posted.
	TypingLockHold TypingLock = iota
	// TypingLockNarrow composes the message without the lock and only
	// locks around the final append.
	TypingLockNarrow
)

func (t TypingLock) String() string {
	switch t {
	case TypingLockHold:
		return "hold"
	case TypingLockNarrow:
		return "narrow"
	default:
		return fmt.Sprintf("TypingLock(%d)", int(t))
	}
}

// ParseTypingLock maps a config string onto a TypingLock.
func ParseTypingLock(s string) (TypingLock, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hold":
		return TypingLockHold, nil
	case "narrow":
		return TypingLockNarrow, nil
	default:
		return TypingLockHold, fmt.Errorf("unknown typing lock %q", s)
	}
}

// ProgressFunc receives the partial body of a message while it is typed.
type ProgressFunc func(partial string)

// Stats counts completed operations on a MessageLog.
type Stats struct {
	Reads     uint64
	Appends   uint64
	Evictions uint64
}

// Option configures a MessageLog.
type Option func(*MessageLog)

// WithTypingLock sets the critical section used by AppendTyped.
func WithTypingLock(t TypingLock) Option {
	return func(l *MessageLog) {
		l.typing = t
	}
}

// MessageLog is a bounded, ordered log of chat entries shared by every
// participant. All reads and writes go through one mutex, so at most one
// operation works on the entries at a time. When an append pushes the log
// past its capacity the oldest entries are evicted.
type MessageLog struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	typing   TypingLock
	stats    Stats

	// trace observes entry to and exit from the critical section.
	trace func(op string, enter bool)
}

// NewMessageLog creates an empty log holding at most capacity entries.
func NewMessageLog(capacity int, opts ...Option) (*MessageLog, error) {
	if capacity < 1 {
		return nil, coreError(ErrCodeInvalidCapacity, "NewMessageLog",
			fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity))
	}
	l := &MessageLog{
		entries:  make([]Entry, 0, capacity+1),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Read returns every entry rendered on its own line, oldest first, without
// a trailing newline. An empty log reads as "".
func (l *MessageLog) Read() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enter("read")
	defer l.leave("read")

	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}
	l.stats.Reads++
	return b.String()
}

// Entries returns a copy of the current entries, oldest first.
func (l *MessageLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enter("entries")
	defer l.leave("entries")

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	l.stats.Reads++
	return out
}

// Append adds a message from author and evicts the oldest entries beyond capacity.
func (l *MessageLog) Append(author, body string) error {
	if author == "" {
		return coreError(ErrCodeEmptyAuthor, "Append", ErrEmptyAuthor)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.enter("append")
	defer l.leave("append")

	l.push(Entry{Author: author, Body: body})
	return nil
}

// AppendTyped builds a body from src one character at a time, waiting delay
// after each character and reporting every partial body to onProgress, then
// appends it like Append.
//
// With TypingLockHold the log stays locked for the whole composition, so
// onProgress runs inside the critical section and must not call back into
// the log. If ctx is cancelled before the body is appended nothing is
// written and the context error is returned.
func (l *MessageLog) AppendTyped(ctx context.Context, author string, src CharSource, delay time.Duration, onProgress ProgressFunc) error {
	if author == "" {
		return coreError(ErrCodeEmptyAuthor, "AppendTyped", ErrEmptyAuthor)
	}
	if src == nil {
		return coreError(ErrCodeNilSource, "AppendTyped", ErrNilSource)
	}

	if l.typing == TypingLockNarrow {
		body, err := compose(ctx, src, delay, onProgress)
		if err != nil {
			return coreError(ErrCodeCancelled, "AppendTyped", err)
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		l.enter("append_typed")
		defer l.leave("append_typed")

		l.push(Entry{Author: author, Body: body})
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.enter("append_typed")
	defer l.leave("append_typed")

	body, err := compose(ctx, src, delay, onProgress)
	if err != nil {
		return coreError(ErrCodeCancelled, "AppendTyped", err)
	}
	l.push(Entry{Author: author, Body: body})
	return nil
}

// Len returns the number of stored entries.
func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cap returns the capacity the log was created with.
func (l *MessageLog) Cap() int {
	return l.capacity
}

// TypingLock reports the critical section mode used by AppendTyped.
func (l *MessageLog) TypingLock() TypingLock {
	return l.typing
}

// Stats returns a copy of the operation counters.
func (l *MessageLog) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// push must be called with l.mu held.
func (l *MessageLog) push(e Entry) {
	l.entries = append(l.entries, e)
	l.stats.Appends++
	for len(l.entries) > l.capacity {
		n := copy(l.entries, l.entries[1:])
		l.entries[n] = Entry{}
		l.entries = l.entries[:n]
		l.stats.Evictions++
	}
}

func (l *MessageLog) enter(op string) {
	if l.trace != nil {
		l.trace(op, true)
	}
}

func (l *MessageLog) leave(op string) {
	if l.trace != nil {
		l.trace(op, false)
	}
}

func compose(ctx context.Context, src CharSource, delay time.Duration, onProgress ProgressFunc) (string, error) {
	n := src.Len()
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteRune(src.Next())
		if onProgress != nil {
			onProgress(b.String())
		}
		if delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return "", err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
