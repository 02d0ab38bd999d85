package tracker

import (
	"sync"
	"time"
)

// NoticeTTL is how long a notice stays visible unless dismissed.
const NoticeTTL = 5 * time.Second

type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
)

type Notice struct {
	ID      uint64
	Kind    NoticeKind
	Message string
	Posted  time.Time
}

func (n Notice) Expired(now time.Time) bool {
	return now.Sub(n.Posted) >= NoticeTTL
}

// Notices is a list of transient messages that expire after NoticeTTL.
type Notices struct {
	mu    sync.Mutex
	now   func() time.Time
	seq   uint64
	items []Notice
}

func NewNotices(now func() time.Time) *Notices {
	if now == nil {
		now = time.Now
	}
	return &Notices{now: now}
}

func (n *Notices) Post(kind NoticeKind, message string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	notice := Notice{ID: n.seq, Kind: kind, Message: message, Posted: n.now()}
	n.items = append(n.items, notice)
	return notice
}

// Dismiss removes a notice before it expires.
func (n *Notices) Dismiss(id uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the unexpired notices, oldest first, and drops the rest.
func (n *Notices) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if !item.Expired(now) {
			kept = append(kept, item)
		}
	}
	n.items = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
