package engine

import (
	"context"

	"github.com/looplab/fsm"
)

// Session phases. The machine only guards ordering; all state mutation
// happens in the engine's methods.
const (
	PhaseIdle           = "idle"            // board dealt, nothing flipped yet this game
	PhaseAwaitingFirst  = "awaiting_first"  // game live, no card up
	PhaseAwaitingSecond = "awaiting_second" // one card up
	PhaseResolving      = "resolving"       // two cards up, outcome delayed
	PhaseComplete       = "complete"        // all pairs matched
	PhaseTimeUp         = "time_up"         // timer mode ran out
)

const (
	eventBegin    = "begin"     // first interaction of a fresh game
	eventFlipOne  = "flip_one"  // first card of an attempt goes up
	eventFlipTwo  = "flip_two"  // second card goes up, resolution pending
	eventResolved = "resolved"  // attempt settled, board live again
	eventClearOne = "clear_one" // lone flipped card forcibly cleared (turn timeout)
	eventFinish   = "finish"    // last pair matched
	eventExpire   = "expire"    // timer mode ran out
	eventReset    = "reset"     // new deal
)

func newMachine() *fsm.FSM {
	return fsm.NewFSM(
		PhaseIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{PhaseIdle}, Dst: PhaseAwaitingFirst},
			{Name: eventFlipOne, Src: []string{PhaseAwaitingFirst}, Dst: PhaseAwaitingSecond},
			{Name: eventFlipTwo, Src: []string{PhaseAwaitingSecond}, Dst: PhaseResolving},
			{Name: eventResolved, Src: []string{PhaseResolving}, Dst: PhaseAwaitingFirst},
			{Name: eventClearOne, Src: []string{PhaseAwaitingSecond}, Dst: PhaseAwaitingFirst},
			{Name: eventFinish, Src: []string{PhaseResolving}, Dst: PhaseComplete},
			{Name: eventExpire, Src: []string{
				PhaseIdle, PhaseAwaitingFirst, PhaseAwaitingSecond, PhaseResolving,
			}, Dst: PhaseTimeUp},
			{Name: eventReset, Src: []string{
				PhaseIdle, PhaseAwaitingFirst, PhaseAwaitingSecond,
				PhaseResolving, PhaseComplete, PhaseTimeUp,
			}, Dst: PhaseIdle},
		},
		fsm.Callbacks{},
	)
}

// fire advances the machine. Transitions are only fired from states where
// they are legal; a rejected event indicates an engine bug, so it is logged
// rather than surfaced.
func (g *Game) fire(event string) {
	err := g.machine.Event(context.Background(), event)
	if err == nil {
		return
	}
	if _, ok := err.(fsm.NoTransitionError); ok {
		// Self-transitions (e.g. reset while already idle) are fine.
		return
	}
	g.debugf("engine: fsm rejected %s from %s: %v", event, g.machine.Current(), err)
}
