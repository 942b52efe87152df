package chat

import (
	"sort"

	"mendwell/models"
)

// Collector merges messages arriving from both the persisted history and the
// live stream. Messages are kept ordered by send time and deduplicated by
// id, so replaying history over an already-subscribed stream is harmless.
type Collector struct {
	messages []models.Message
	seen     map[string]bool
	limit    int
}

// NewCollector returns an empty collector that retains everything added.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]bool)}
}

// NewBoundedCollector returns a collector that retains at most limit
// messages, evicting the oldest one (and its dedupe entry) on overflow. Use
// it for long-lived consumers such as stream subscriptions, where an
// unbounded window would grow for the life of the connection.
func NewBoundedCollector(limit int) *Collector {
	return &Collector{seen: make(map[string]bool), limit: limit}
}

// Add inserts the message in timestamp order. A message whose id was already
// collected is dropped; returns whether the message was kept.
func (c *Collector) Add(msg models.Message) bool {
	if msg.ID != "" && c.seen[msg.ID] {
		return false
	}
	if msg.ID != "" {
		c.seen[msg.ID] = true
	}

	idx := sort.Search(len(c.messages), func(i int) bool {
		return c.messages[i].SentAt.After(msg.SentAt)
	})
	c.messages = append(c.messages, models.Message{})
	copy(c.messages[idx+1:], c.messages[idx:])
	c.messages[idx] = msg

	if c.limit > 0 && len(c.messages) > c.limit {
		evicted := c.messages[0]
		if evicted.ID != "" {
			delete(c.seen, evicted.ID)
		}
		c.messages = c.messages[1:]
	}
	return true
}

// AddAll inserts a batch, typically a history page.
func (c *Collector) AddAll(msgs []models.Message) {
	for _, m := range msgs {
		c.Add(m)
	}
}

// Messages returns the collected messages, oldest first.
func (c *Collector) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns how many distinct messages were collected.
func (c *Collector) Len() int {
	return len(c.messages)
}
