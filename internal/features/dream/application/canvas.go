package application

import (
	"sync"
	"time"

	"dream-canvas/backend/internal/features/dream/domain"
)

// Notification is a one-shot message shown on the next page render.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

// CanvasView is a snapshot of a canvas for rendering.
type CanvasView struct {
	State            domain.AnalysisState
	DreamDescription string
	Notification     *Notification
}

// Canvas holds the page state of one browser session.
type Canvas struct {
	mu               sync.Mutex
	generation       uint64
	state            domain.AnalysisState
	dreamDescription string
	notification     *Notification
}

// NewCanvas returns an idle canvas.
func NewCanvas() *Canvas {
	return &Canvas{state: domain.Idle{}}
}

// Begin records a new submission and returns its generation.
func (c *Canvas) Begin(dreamDescription string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.dreamDescription = dreamDescription
	c.state = domain.BeginAnalysis(c.state, c.generation)
	return c.generation
}

// Finish applies the outcome of submission gen. It reports false when a newer
// submission has started since, in which case the outcome is dropped.
func (c *Canvas) Finish(gen uint64, result *domain.AnalysisResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, applied := domain.CompleteAnalysis(c.state, gen, result, err)
	if !applied {
		return false
	}
	c.state = next

	if err != nil {
		c.notification = &Notification{
			Title:       "Error analyzing dream",
			Description: err.Error(),
			Destructive: true,
		}
	} else {
		c.notification = &Notification{
			Title:       "Dream analyzed!",
			Description: "Your dream has been analyzed and visualized.",
		}
	}
	return true
}

// View returns the current state and consumes the pending notification.
func (c *Canvas) View() CanvasView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := CanvasView{
		State:            c.state,
		DreamDescription: c.dreamDescription,
		Notification:     c.notification,
	}
	c.notification = nil
	return view
}

// CanvasStore keeps one canvas per browser session, in memory. Canvases not
// seen for idleTimeout are swept, and at most maxCanvases are held.
type CanvasStore struct {
	mu          sync.Mutex
	canvases    map[string]*storedCanvas
	idleTimeout time.Duration
	maxCanvases int
	lastSweep   time.Time
	now         func() time.Time
}

type storedCanvas struct {
	canvas   *Canvas
	lastSeen time.Time
}

// NewCanvasStore creates an empty store.
func NewCanvasStore(idleTimeout time.Duration, maxCanvases int) *CanvasStore {
	return &CanvasStore{
		canvases:    make(map[string]*storedCanvas),
		idleTimeout: idleTimeout,
		maxCanvases: maxCanvases,
		now:         time.Now,
	}
}

// Lookup returns the canvas for sessionID if one is held. It never creates one.
func (s *CanvasStore) Lookup(sessionID string) (*Canvas, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.canvases[sessionID]
	if !ok {
		return nil, false
	}
	stored.lastSeen = s.now()
	return stored.canvas, true
}

// Get returns the canvas for sessionID, creating an idle one on first use.
// Creating a canvas may sweep idle ones and, when the store is full, evict
// the least recently seen.
func (s *CanvasStore) Get(sessionID string) *Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if stored, ok := s.canvases[sessionID]; ok {
		stored.lastSeen = now
		return stored.canvas
	}

	if now.Sub(s.lastSweep) >= s.idleTimeout || len(s.canvases) >= s.maxCanvases {
		s.sweepLocked(now)
	}
	if s.maxCanvases > 0 && len(s.canvases) >= s.maxCanvases {
		s.evictOldestLocked()
	}

	canvas := NewCanvas()
	s.canvases[sessionID] = &storedCanvas{canvas: canvas, lastSeen: now}
	return canvas
}

// Sweep drops canvases idle for longer than the idle timeout and reports how many went.
func (s *CanvasStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

// Len reports the number of canvases held.
func (s *CanvasStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.canvases)
}

func (s *CanvasStore) sweepLocked(now time.Time) int {
	s.lastSweep = now
	removed := 0
	for id, stored := range s.canvases {
		if now.Sub(stored.lastSeen) > s.idleTimeout {
			delete(s.canvases, id)
			removed++
		}
	}
	return removed
}

func (s *CanvasStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, stored := range s.canvases {
		if oldestID == "" || stored.lastSeen.Before(oldest) {
			oldestID, oldest = id, stored.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.canvases, oldestID)
	}
}
