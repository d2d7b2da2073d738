package events

import (
	"testing"
	"time"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan PresetAppliedEvent, 1)

	unsub := bus.Subscribe(func(e PresetAppliedEvent) {
		received <- e
	})
	defer unsub()

	ev := PresetAppliedEvent{
		PresetIndex: 1,
		Color:       hexcolor.Color(0x112233),
		Pixels:      []hexcolor.Color{0x010203},
		Brightness:  128,
		IntervalMs:  50,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	bus.Publish(ev)

	got := <-received
	if got.PresetIndex != ev.PresetIndex {
		t.Errorf("preset_index = %d, want %d", got.PresetIndex, ev.PresetIndex)
	}
	if got.Color != ev.Color {
		t.Errorf("color = %v, want %v", got.Color, ev.Color)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan CommandRejectedEvent, 1)
	received2 := make(chan CommandRejectedEvent, 1)

	unsub1 := bus.Subscribe(func(e CommandRejectedEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e CommandRejectedEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(CommandRejectedEvent{Command: "bright", Reason: "out_of_range"})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan LogEntryEvent, 1)

	unsub := bus.Subscribe(func(e LogEntryEvent) {
		received <- e
	})

	bus.Publish(LogEntryEvent{Message: "first"})
	<-received

	unsub()
	bus.Publish(LogEntryEvent{Message: "second"})

	select {
	case e := <-received:
		t.Errorf("received %q after unsubscribe", e.Message)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_UnknownHandlerType(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(s string) {})
	unsub() // must be a safe no-op
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[PresetAppliedEvent](bus, ch)
	defer unsub()

	bus.Publish(PresetAppliedEvent{PresetIndex: 2})

	select {
	case got := <-ch:
		ev, ok := got.(PresetAppliedEvent)
		if !ok {
			t.Fatalf("received %T, want PresetAppliedEvent", got)
		}
		if ev.PresetIndex != 2 {
			t.Errorf("preset_index = %d, want 2", ev.PresetIndex)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any) // unbuffered and never drained

	unsub := SubscribeToChannel[LogEntryEvent](bus, ch)
	defer unsub()

	// Publish must not block even though nothing reads the channel.
	bus.Publish(LogEntryEvent{Message: "dropped"})
}
