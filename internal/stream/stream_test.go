package stream

import (
	"context"
	"testing"
	"time"
)

func TestSubscribeReceivesSnapshots(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, "acct-1", Products)
	h.Publish("acct-1", Products, []string{"a", "b"})

	select {
	case snap := <-ch:
		if snap.Collection != Products {
			t.Fatalf("unexpected collection: %s", snap.Collection)
		}
		records, ok := snap.Records.([]string)
		if !ok || len(records) != 2 {
			t.Fatalf("unexpected records: %#v", snap.Records)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestSubscriberScoping(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otherOwner := h.Subscribe(ctx, "acct-2", Products)
	otherColl := h.Subscribe(ctx, "acct-1", Sales)

	h.Publish("acct-1", Products, nil)

	select {
	case <-otherOwner:
		t.Fatal("snapshot leaked across accounts")
	case <-otherColl:
		t.Fatal("snapshot leaked across collections")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeOnContextCancel(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())

	ch := h.Subscribe(ctx, "acct-1", Customers)
	cancel()

	select {
	case _, open := <-ch:
		if open {
			t.Fatal("expected channel closed after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}

	// Publishing after teardown must not panic or block.
	h.Publish("acct-1", Customers, nil)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = h.Subscribe(ctx, "acct-1", Products)
	// Fill well past the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish("acct-1", Products, i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestCollectionKnown(t *testing.T) {
	for _, c := range []Collection{Products, Customers, Sales} {
		if !c.Known() {
			t.Fatalf("%s should be known", c)
		}
	}
	if Collection("orders").Known() {
		t.Fatal("unexpected collection accepted")
	}
}
