package events

import (
	"encoding/json"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

// Event name constants
const (
	KPIUpdated = "kpi.updated"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// KPIUpdatedEvent is the typed payload for kpi.updated. It is published after
// every change to the session inputs.
type KPIUpdatedEvent struct {
	Reason string     `json:"reason"`
	Inputs kpi.Inputs `json:"inputs"`
	Result kpi.Result `json:"result"`
	Ts     int64      `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.KPIUpdatedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Result.DailyDemandWh)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
