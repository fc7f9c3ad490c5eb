package toolbox

import (
	"sync"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Phase is the state of a tool's most recent invocation
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseInFlight:
		return "InFlight"
	case PhaseSucceeded:
		return "Succeeded"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether a new invocation may start from this phase
func (p Phase) Terminal() bool {
	return p != PhaseInFlight
}

// Snapshot is a read-only view of an invocation, enough to decide which
// panel (empty, spinner, result, error) to render.
type Snapshot[T any] struct {
	Phase     Phase
	Result    T
	HasResult bool
	Spinner   bool
}

// Invocation tracks Idle -> InFlight -> Succeeded|Failed for one tool instance.
// At most one invocation is in flight; a failure keeps the last successful
// result, and the failure reason is only logged.
type Invocation[T any] struct {
	mu        sync.Mutex
	name      string
	phase     Phase
	result    T
	hasResult bool
	seq       uint64
	detached  bool
}

// NewInvocation creates an idle invocation tracker for the named tool
func NewInvocation[T any](name string) *Invocation[T] {
	return &Invocation[T]{name: name}
}

// Begin moves to InFlight and returns a token identifying this attempt.
// It returns ErrInFlight while another attempt is outstanding.
func (i *Invocation[T]) Begin() (uint64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.phase.Terminal() {
		return 0, ErrInFlight
	}
	i.seq++
	i.phase = PhaseInFlight
	return i.seq, nil
}

// Succeed records the result of the attempt identified by token
func (i *Invocation[T]) Succeed(token uint64, result T) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.accepts(token) {
		return
	}
	i.phase = PhaseSucceeded
	i.result = result
	i.hasResult = true
}

// Fail marks the attempt identified by token as failed
func (i *Invocation[T]) Fail(token uint64, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.accepts(token) {
		return
	}
	log.Warnf("%s generation failed: %v", i.name, err)
	i.phase = PhaseFailed
}

// accepts must be called with mu held
func (i *Invocation[T]) accepts(token uint64) bool {
	if i.detached {
		log.Debugf("%s discarding completion after the tool was closed", i.name)
		return false
	}
	return token == i.seq && i.phase == PhaseInFlight
}

// Detach stops the invocation from recording any further completion.
// It is called when the dashboard navigates away from the tool.
func (i *Invocation[T]) Detach() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.detached = true
}

// Snapshot returns the current state
func (i *Invocation[T]) Snapshot() Snapshot[T] {
	i.mu.Lock()
	defer i.mu.Unlock()
	return Snapshot[T]{
		Phase:     i.phase,
		Result:    i.result,
		HasResult: i.hasResult,
		Spinner:   i.phase == PhaseInFlight,
	}
}

// Result returns the last successful result, if any
func (i *Invocation[T]) Result() (T, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.result, i.hasResult
}
