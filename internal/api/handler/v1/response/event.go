package response

import "github.com/festflow/festflow-api/internal/domain"

// Event is the public view of an event with its remaining capacity.
type Event struct {
	domain.Event
	SpotsLeft int `json:"spotsLeft"`
}

func NewEvent(e domain.Event) Event {
	return Event{Event: e, SpotsLeft: e.SpotsLeft()}
}

func NewEvents(events []domain.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = NewEvent(e)
	}
	return out
}
