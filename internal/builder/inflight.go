package builder

import "sync"

// Actions guarded by the in-flight guard.
const (
	ActionGenerate = "generate"
	ActionOptimize = "optimize"
	ActionTailor   = "tailor"
	ActionReview   = "review"
)

// inflightGuard admits one running request per user and action.
type inflightGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{running: make(map[string]struct{})}
}

// Acquire marks userID|action as running. The returned release must be called
// once the request finishes. ok is false when the pair is already running.
func (g *inflightGuard) Acquire(userID, action string) (release func(), ok bool) {
	key := userID + "|" + action
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.running[key]; busy {
		return func() {}, false
	}
	g.running[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}, true
}
