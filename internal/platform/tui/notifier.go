package tui

import (
	"sync"
	"time"
)

// flashFor is how long a gameplay event stays visible in the status bar.
const flashFor = time.Second

// FlashNotifier implements engine.Notifier by remembering the last event so
// the board can flash it in the status bar. Terminal sessions have no sound
// channel; a short status flash is the equivalent.
type FlashNotifier struct {
	mu   sync.Mutex
	text string
	at   time.Time
}

// NewFlashNotifier returns an empty notifier.
func NewFlashNotifier() *FlashNotifier {
	return &FlashNotifier{}
}

func (n *FlashNotifier) GameStart()    { n.set("let's go") }
func (n *FlashNotifier) CardFlip()     {}
func (n *FlashNotifier) Match()        { n.set("✓ match") }
func (n *FlashNotifier) Mismatch()     { n.set("✗ miss") }
func (n *FlashNotifier) GameComplete() { n.set("★ all pairs found") }

func (n *FlashNotifier) set(text string) {
	n.mu.Lock()
	n.text = text
	n.at = time.Now()
	n.mu.Unlock()
}

// Flash returns the current event text, or "" once it has gone stale.
func (n *FlashNotifier) Flash() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.text == "" || time.Since(n.at) > flashFor {
		return ""
	}
	return n.text
}
