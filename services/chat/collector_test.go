package chat

import (
	"testing"
	"time"

	"mendwell/models"
)

func msgAt(id string, t time.Time) models.Message {
	return models.Message{ID: id, SenderID: "a", ReceiverID: "b", Text: id, SentAt: t}
}

func TestCollectorOrdersByTimestamp(t *testing.T) {
	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	c := NewCollector()

	// Arrival order is scrambled relative to send time.
	c.Add(msgAt("m3", base.Add(3*time.Minute)))
	c.Add(msgAt("m1", base.Add(1*time.Minute)))
	c.Add(msgAt("m4", base.Add(4*time.Minute)))
	c.Add(msgAt("m2", base.Add(2*time.Minute)))

	got := c.Messages()
	want := []string{"m1", "m2", "m3", "m4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestCollectorDedupesByID(t *testing.T) {
	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	c := NewCollector()

	if !c.Add(msgAt("m1", base)) {
		t.Fatal("first add must be kept")
	}
	// The same message arriving again over the live stream is dropped, even
	// with a drifted timestamp.
	if c.Add(msgAt("m1", base.Add(time.Second))) {
		t.Fatal("duplicate id must be dropped")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", c.Len())
	}
}

func TestBoundedCollectorEvictsOldest(t *testing.T) {
	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	c := NewBoundedCollector(3)

	c.Add(msgAt("m1", base.Add(1*time.Minute)))
	c.Add(msgAt("m2", base.Add(2*time.Minute)))
	c.Add(msgAt("m3", base.Add(3*time.Minute)))
	c.Add(msgAt("m4", base.Add(4*time.Minute)))

	got := c.Messages()
	want := []string{"m2", "m3", "m4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d: %+v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	// Duplicates inside the window are still dropped.
	if c.Add(msgAt("m3", base.Add(3*time.Minute))) {
		t.Fatal("duplicate inside the window must be dropped")
	}
	// An evicted id is forgotten, so its redelivery is accepted again rather
	// than leaking a dedupe entry per message forever.
	if !c.Add(msgAt("m1", base.Add(1*time.Minute))) {
		t.Fatal("redelivery of an evicted id must be accepted")
	}
	if c.Len() != 3 {
		t.Fatalf("window exceeded its bound: %d", c.Len())
	}
}

func TestCollectorMergesHistoryAndLive(t *testing.T) {
	base := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	c := NewCollector()

	// Live messages land first.
	c.Add(msgAt("m5", base.Add(5*time.Minute)))
	c.Add(msgAt("m6", base.Add(6*time.Minute)))

	// Then the history page replays, overlapping the live window.
	c.AddAll([]models.Message{
		msgAt("m1", base.Add(1*time.Minute)),
		msgAt("m2", base.Add(2*time.Minute)),
		msgAt("m5", base.Add(5*time.Minute)),
	})

	got := c.Messages()
	want := []string{"m1", "m2", "m5", "m6"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d: %+v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestChannelForIsSymmetric(t *testing.T) {
	if ChannelFor("alice", "bob") != ChannelFor("bob", "alice") {
		t.Fatal("both sides must compute the same channel name")
	}
	if ChannelFor("alice", "bob") == ChannelFor("alice", "carol") {
		t.Fatal("different pairs must use different channels")
	}
}
