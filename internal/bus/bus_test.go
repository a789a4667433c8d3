package bus

import "testing"

func TestBus_DeliversToMatchingSubscribers(t *testing.T) {
	b := New()

	var got []Event
	b.Subscribe(RunStateChange, func(e Event) { got = append(got, e) })
	b.Subscribe("other", func(e Event) { t.Error("wrong type delivered") })

	b.Publish(Event{Type: RunStateChange, Job: "demo"})

	if len(got) != 1 {
		t.Fatalf("delivered %d events, want 1", len(got))
	}
	if got[0].Job != "demo" {
		t.Fatalf("Job = %q", got[0].Job)
	}
}

func TestBus_MultipleSubscribersAllFire(t *testing.T) {
	b := New()

	count := 0
	b.Subscribe(RunStateChange, func(Event) { count++ })
	b.Subscribe(RunStateChange, func(Event) { count++ })

	b.Publish(Event{Type: RunStateChange})

	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestBus_NoSubscribersIsANoOp(t *testing.T) {
	b := New()
	b.Publish(Event{Type: "unheard"}) // must not panic
}
