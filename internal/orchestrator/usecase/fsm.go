package usecase

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"homework-planner/internal/orchestrator"
)

// Cycle events.
const (
	eventStart     = "start"
	eventExtracted = "extracted"
	eventChanged   = "changed"
	eventFinish    = "finish"
	eventPlanned   = "planned"
	eventSynced    = "synced"
	eventFail      = "fail"
	eventReset     = "reset"
)

type cycleContext struct{}

// cycleMachine tracks the stage of the running cycle. Only the holder of the cycle slot drives it.
type cycleMachine struct {
	interpreter *statekit.Interpreter[cycleContext]
}

func newCycleMachine() (*cycleMachine, error) {
	builder := statekit.NewMachine[cycleContext]("homework-cycle").
		WithInitial(statekit.StateID(orchestrator.StageIdle)).
		WithContext(cycleContext{})

	builder.State(orchestrator.StageIdle).
		On(eventStart).Target(orchestrator.StageExtracting).
		Done()

	builder.State(orchestrator.StageExtracting).
		On(eventExtracted).Target(orchestrator.StageDetecting).
		On(eventFail).Target(orchestrator.StageFailed).
		Done()

	builder.State(orchestrator.StageDetecting).
		On(eventChanged).Target(orchestrator.StagePlanning).
		On(eventFinish).Target(orchestrator.StageIdle).
		On(eventFail).Target(orchestrator.StageFailed).
		Done()

	builder.State(orchestrator.StagePlanning).
		On(eventPlanned).Target(orchestrator.StageSyncing).
		On(eventFail).Target(orchestrator.StageFailed).
		Done()

	builder.State(orchestrator.StageSyncing).
		On(eventSynced).Target(orchestrator.StageIdle).
		On(eventFail).Target(orchestrator.StageFailed).
		Done()

	builder.State(orchestrator.StageFailed).
		On(eventReset).Target(orchestrator.StageIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build cycle state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &cycleMachine{interpreter: interpreter}, nil
}

func (m *cycleMachine) fire(event string) error {
	before := m.current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.current() == before {
		return fmt.Errorf("event %q not allowed in stage %q", event, before)
	}
	return nil
}

func (m *cycleMachine) current() string {
	return string(m.interpreter.State().Value)
}

// abort moves a cycle that stopped mid-way back to idle through failed.
func (m *cycleMachine) abort() {
	if m.current() == orchestrator.StageIdle {
		return
	}
	if m.current() != orchestrator.StageFailed {
		_ = m.fire(eventFail)
	}
	_ = m.fire(eventReset)
}
