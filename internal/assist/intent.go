package assist

import "encoding/json"

// Intent types understood by the dispatcher.
const (
	IntentAddWater    = "add_water"
	IntentRemoveWater = "remove_water"
	IntentSetGoal     = "set_goal"
)

// Intent is a normalized assistant command. Number and Glasses carry
// the raw payload value, which the assistant sends either as a number
// or as a spoken-word string.
type Intent struct {
	Type    string          `json:"type"`
	Number  json.RawMessage `json:"number,omitempty"`
	Glasses json.RawMessage `json:"glasses,omitempty"`
}

// State is the snapshot pushed back to the assistant on every change.
type State struct {
	WaterTracker TrackerState `json:"water_tracker"`
}

// TrackerState is the assistant-visible part of the tracker.
type TrackerState struct {
	CurrentGlasses int `json:"current_glasses"`
	GoalGlasses    int `json:"goal_glasses"`
}
