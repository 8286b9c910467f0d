package portal

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Extraction states.
const (
	StateStart            = "start"
	StateLoginSubmitted   = "login_submitted"
	StateDashboardReached = "dashboard_reached"
	StateLoginRejected    = "login_rejected"
	StateTileNavigated    = "tile_navigated"
	StateTableDiscovered  = "table_discovered"
	StateParsed           = "parsed"
	StateFailed           = "failed"
)

// Extraction events.
const (
	EventSubmitLogin = "submit_login"
	EventDashboard   = "dashboard"
	EventRejected    = "rejected"
	EventTile        = "tile"
	EventTable       = "table"
	EventParsed      = "parsed"
	EventFail        = "fail"
	EventReset       = "reset"
)

type flowContext struct{}

// flow tracks where one extraction is. It is not safe for concurrent use.
type flow struct {
	interpreter *statekit.Interpreter[flowContext]
}

func newFlow() (*flow, error) {
	builder := statekit.NewMachine[flowContext]("portal-extraction").
		WithInitial(statekit.StateID(StateStart)).
		WithContext(flowContext{})

	builder.State(StateStart).
		On(EventSubmitLogin).Target(StateLoginSubmitted).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateLoginSubmitted).
		On(EventDashboard).Target(StateDashboardReached).
		On(EventRejected).Target(StateLoginRejected).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateDashboardReached).
		On(EventTile).Target(StateTileNavigated).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateLoginRejected).
		On(EventFail).Target(StateFailed).
		On(EventReset).Target(StateStart).
		Done()

	builder.State(StateTileNavigated).
		On(EventTable).Target(StateTableDiscovered).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateTableDiscovered).
		On(EventParsed).Target(StateParsed).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateParsed).
		On(EventReset).Target(StateStart).
		Done()

	builder.State(StateFailed).
		On(EventReset).Target(StateStart).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &flow{interpreter: interpreter}, nil
}

// fire applies event and fails when the current state does not accept it.
func (f *flow) fire(event string) error {
	before := f.current()
	f.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if f.current() == before {
		return fmt.Errorf("event %q not allowed in state %q", event, before)
	}
	return nil
}

func (f *flow) current() string {
	return string(f.interpreter.State().Value)
}
