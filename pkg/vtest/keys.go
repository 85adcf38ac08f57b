package vtest

import "sync"

// Keys is a manual notify.KeySource. Tests press keys; mounted
// notifications receive them through their subscription.
type Keys struct {
	mu   sync.Mutex
	subs map[uint64]func(key string)
	next uint64
}

// NewKeys creates an empty key source.
func NewKeys() *Keys {
	return &Keys{subs: make(map[uint64]func(string))}
}

// Subscribe implements notify.KeySource.
func (k *Keys) Subscribe(fn func(key string)) func() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.next++
	id := k.next
	k.subs[id] = fn

	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		delete(k.subs, id)
	}
}

// Press delivers a keydown to every subscriber.
func (k *Keys) Press(key string) {
	k.mu.Lock()
	subs := make([]func(string), 0, len(k.subs))
	for _, fn := range k.subs {
		subs = append(subs, fn)
	}
	k.mu.Unlock()

	for _, fn := range subs {
		fn(key)
	}
}

// Subscribers returns the live subscription count, for asserting that
// closing a notification tears its subscription down.
func (k *Keys) Subscribers() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.subs)
}
