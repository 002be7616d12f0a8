// Package prompt rotates writing prompts and picks inspirations.
package prompt

import "math/rand/v2"

// Queue cycles through a fixed set of prompts. The order is shuffled once at
// construction; after that Next walks the same rotation forever.
type Queue struct {
	items []string
	head  int
}

// NewQueue copies prompts and shuffles the copy with rng.
func NewQueue(prompts []string, rng *rand.Rand) *Queue {
	items := append([]string(nil), prompts...)
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return &Queue{items: items}
}

// Next moves the head prompt to the tail and returns it. An empty queue
// returns "".
func (q *Queue) Next() string {
	if len(q.items) == 0 {
		return ""
	}
	p := q.items[q.head]
	q.head = (q.head + 1) % len(q.items)
	return p
}

// Len returns the number of prompts in the rotation.
func (q *Queue) Len() int {
	return len(q.items)
}

// Pick returns a uniformly random element of items, or "" when empty.
func Pick(rng *rand.Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rng.IntN(len(items))]
}
