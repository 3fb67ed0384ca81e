package events

import (
	"testing"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.Subscribers())
	}

	h.Publish(KPIUpdated, KPIUpdatedEvent{
		Reason: "tank",
		Inputs: kpi.Inputs{TankLiters: 10},
		Result: kpi.Result{DailyDemandWh: 1080},
	})

	ev := <-ch
	if ev.Name != KPIUpdated {
		t.Fatalf("expected event %s, got %s", KPIUpdated, ev.Name)
	}
	payload, err := DecodeAs[KPIUpdatedEvent](ev)
	if err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Reason != "tank" || payload.Result.DailyDemandWh != 1080 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	h.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed after unsubscribe")
	}
	// Unsubscribing twice must not panic.
	h.Unsubscribe(ch)
}

func TestHubKeepsLatestWhenSubscriberIsFull(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	total := cap(ch) + 5
	for i := 0; i < total; i++ {
		h.Publish(KPIUpdated, i)
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected buffer to be full (%d), got %d", cap(ch), len(ch))
	}

	var first, last Event
	for i := 0; i < cap(ch); i++ {
		ev := <-ch
		if i == 0 {
			first = ev
		}
		last = ev
	}
	if got, want := string(first.Data), "5"; got != want {
		t.Errorf("oldest kept event = %s, want %s", got, want)
	}
	if got, want := string(last.Data), "20"; got != want {
		t.Errorf("newest event = %s, want %s", got, want)
	}
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	h.Publish(KPIUpdated, nil)
}

func TestDecodeAsEmpty(t *testing.T) {
	v, err := DecodeAs[KPIUpdatedEvent](Event{Name: KPIUpdated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Reason != "" {
		t.Fatalf("expected zero value, got %+v", v)
	}
}
