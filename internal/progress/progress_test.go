package progress

import "testing"

func TestChannel_OrderedDelivery(t *testing.T) {
	c := NewChannel(8)
	c.Init("working")
	c.Update(50)
	c.Complete()
	c.Close()

	var got []Event
	for ev := range c.Events() {
		got = append(got, ev)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Kind != EventInit || got[0].Label != "working" {
		t.Fatalf("unexpected init event: %+v", got[0])
	}
	if got[1].Kind != EventUpdate || got[1].Percent != 50 {
		t.Fatalf("unexpected update event: %+v", got[1])
	}
	if got[2].Kind != EventComplete {
		t.Fatalf("unexpected final event: %+v", got[2])
	}
}

func TestChannel_DropsWhenConsumerFallsBehind(t *testing.T) {
	c := NewChannel(1)
	// No consumer: the second update must be dropped, not block.
	c.Update(10)
	c.Update(20)
	c.Close()

	var got []Event
	for ev := range c.Events() {
		got = append(got, ev)
	}
	if len(got) != 1 || got[0].Percent != 10 {
		t.Fatalf("expected only the first event to survive, got %+v", got)
	}
}
