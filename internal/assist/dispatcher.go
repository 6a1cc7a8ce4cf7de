package assist

import (
	"context"
	"fmt"
	"log"

	"hydration/internal/app"
)

// Dispatcher translates intents into engine operations. It is the only
// thing the assistant transport needs to know about; the engine never
// sees the assistant wire format.
type Dispatcher struct {
	engine *app.Engine
}

// NewDispatcher creates a Dispatcher bound to the given engine.
func NewDispatcher(engine *app.Engine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

// Snapshot returns the assistant-facing state.
func (d *Dispatcher) Snapshot() State {
	current, goal := d.engine.Snapshot()
	return State{WaterTracker: TrackerState{CurrentGlasses: current, GoalGlasses: goal}}
}

// HandleIntent applies an intent and returns the resulting snapshot.
// Unparseable or out-of-range quantities are logged and dropped
// without touching state; storage failures propagate to the caller.
func (d *Dispatcher) HandleIntent(ctx context.Context, intent Intent) (State, error) {
	var err error
	switch intent.Type {
	case IntentAddWater:
		quantity, perr := ParseQuantity(intent.Number)
		if perr != nil {
			log.Printf("assist: dropping %s: %v", intent.Type, perr)
			return d.Snapshot(), nil
		}
		err = d.engine.AddWater(ctx, quantity)

	case IntentRemoveWater:
		quantity, perr := ParseQuantity(intent.Number)
		if perr != nil {
			log.Printf("assist: dropping %s: %v", intent.Type, perr)
			return d.Snapshot(), nil
		}
		err = d.engine.RemoveWater(ctx, quantity)

	case IntentSetGoal:
		glasses, perr := ParseQuantity(intent.Glasses)
		if perr != nil {
			log.Printf("assist: dropping %s: %v", intent.Type, perr)
			return d.Snapshot(), nil
		}
		err = d.engine.SetGoal(ctx, glasses)

	default:
		log.Printf("assist: dropping unknown intent %q", intent.Type)
		return d.Snapshot(), nil
	}

	if err != nil {
		return State{}, fmt.Errorf("apply %s: %w", intent.Type, err)
	}
	return d.Snapshot(), nil
}
