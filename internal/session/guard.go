package session

import (
	"log"
	"sync"
)

// Event describes a change to the persisted session state, published
// to every subscriber through an explicit channel.
type Event struct {
	LoggedIn bool
	Reason   string
}

// Broadcaster fans session-change events out to subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan Event
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster { return &Broadcaster{} }

// Subscribe registers a buffered listener channel. Slow consumers
// drop events rather than blocking the publisher.
func (b *Broadcaster) Subscribe() <-chan Event {
	ch := make(chan Event, 4)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers ev to every subscriber without blocking.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Guard decides whether the stored credential is still usable and
// tears the session down when it is not.
// Guard は保存済みトークンの有効期限を監視するセッションガード。
type Guard struct {
	store       Store
	broadcaster *Broadcaster
	logger      *log.Logger
}

// NewGuard wires a guard over store. broadcaster and logger may be nil.
func NewGuard(store Store, broadcaster *Broadcaster, logger *log.Logger) *Guard {
	return &Guard{store: store, broadcaster: broadcaster, logger: logger}
}

// CheckAndHandle reads the persisted token and, when it has expired,
// clears every session field in one overwrite and broadcasts the
// change. Returns true when the session was invalidated. A missing
// token is not an expiry: there is nothing to tear down.
func (g *Guard) CheckAndHandle() bool {
	creds, err := g.store.Load()
	if err != nil {
		if g.logger != nil {
			g.logger.Printf("세션 정보를 읽지 못했습니다: %v", err)
		}
		return false
	}
	if creds.AccessToken == "" {
		return false
	}
	if !IsExpired(creds.AccessToken) {
		return false
	}

	g.Invalidate("expired")
	return true
}

// Invalidate clears the persisted session unconditionally and
// publishes the change. Used both by expiry detection and by the API
// client's reactive 401 handling, and by explicit logout.
func (g *Guard) Invalidate(reason string) {
	if err := g.store.Clear(); err != nil && g.logger != nil {
		g.logger.Printf("세션 정보 삭제에 실패했습니다: %v", err)
	}
	if g.logger != nil {
		g.logger.Printf("토큰이 만료되었습니다. 자동 로그아웃합니다. (%s)", reason)
	}
	if g.broadcaster != nil {
		g.broadcaster.Publish(Event{LoggedIn: false, Reason: reason})
	}
}

// Token returns the persisted access token, empty when logged out.
func (g *Guard) Token() string {
	creds, err := g.store.Load()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}
