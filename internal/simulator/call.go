package simulator

import (
	"sync"

	"github.com/google/uuid"
)

// State tracks a single call through Idle -> Pending -> Resolved.
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Call is the deferred result of one submitted request. Calls share no state with each other.
type Call struct {
	ID      string
	Request Request

	mutex    sync.Mutex
	state    State
	response Response
	err      error
	done     chan struct{}
}

func newCall(request Request) *Call {
	return &Call{
		ID:      uuid.NewString(),
		Request: request,
		state:   StateIdle,
		done:    make(chan struct{}),
	}
}

func (call *Call) State() State {
	call.mutex.Lock()
	defer call.mutex.Unlock()
	return call.state
}

// Done is closed once the call is resolved or abandoned.
func (call *Call) Done() <-chan struct{} {
	return call.done
}

// Wait blocks until the call settles. An abandoned call reports its cancellation cause.
func (call *Call) Wait() (Response, error) {
	<-call.done
	call.mutex.Lock()
	defer call.mutex.Unlock()
	return call.response, call.err
}

func (call *Call) markPending() {
	call.mutex.Lock()
	call.state = StatePending
	call.mutex.Unlock()
}

func (call *Call) resolve(response Response) {
	call.mutex.Lock()
	call.state = StateResolved
	call.response = response
	call.mutex.Unlock()
	close(call.done)
}

// abandon drops the pending result and leaves the call idle.
func (call *Call) abandon(cause error) {
	call.mutex.Lock()
	call.state = StateIdle
	call.err = cause
	call.mutex.Unlock()
	close(call.done)
}
