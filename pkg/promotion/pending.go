package promotion

import (
	"sync"
	"time"
)

// ApprovalTimeout is how long a promotion request waits for a staff
// reaction before it is dropped.
const ApprovalTimeout = 180 * time.Second

// PendingApproval is one promotion batch waiting for a staff reaction
type PendingApproval struct {
	MessageID string
	ChannelID string
	Usernames []string
	approved  chan string
}

// Wait blocks until a moderator approves or the timeout passes
func (p *PendingApproval) Wait(timeout time.Duration) (string, bool) {
	select {
	case moderatorID := <-p.approved:
		return moderatorID, true
	case <-time.After(timeout):
		return "", false
	}
}

// Manager tracks promotion batches between the announcement message
// and the staff approval reaction.
type Manager struct {
	mu      sync.Mutex
	pending map[string]*PendingApproval
}

var (
	instance *Manager
	once     sync.Once
)

// Init creates the shared manager
func Init() *Manager {
	once.Do(func() {
		instance = NewManager()
	})
	return instance
}

// Get returns the shared manager, or nil before Init
func Get() *Manager {
	return instance
}

// NewManager builds a standalone manager
func NewManager() *Manager {
	return &Manager{pending: make(map[string]*PendingApproval)}
}

// Register starts tracking a promotion batch keyed by its message
func (m *Manager) Register(messageID, channelID string, usernames []string) *PendingApproval {
	p := &PendingApproval{
		MessageID: messageID,
		ChannelID: channelID,
		Usernames: usernames,
		approved:  make(chan string, 1),
	}

	m.mu.Lock()
	m.pending[messageID] = p
	m.mu.Unlock()
	return p
}

// Approve delivers a staff approval to the waiting batch and reports
// whether the message had one pending
func (m *Manager) Approve(messageID, moderatorID string) bool {
	m.mu.Lock()
	p, ok := m.pending[messageID]
	m.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case p.approved <- moderatorID:
		return true
	default:
		// Already approved once.
		return false
	}
}

// Remove stops tracking a batch, after approval or timeout
func (m *Manager) Remove(messageID string) {
	m.mu.Lock()
	delete(m.pending, messageID)
	m.mu.Unlock()
}

// IsPending reports whether a message still awaits approval
func (m *Manager) IsPending(messageID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[messageID]
	return ok
}
