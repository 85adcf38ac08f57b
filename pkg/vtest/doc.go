// Package vtest provides testing helpers for the notification engine.
//
// The central helper is the fake Clock, which implements notify.Clock and
// lets tests advance virtual time deterministically:
//
//	clock := vtest.NewClock()
//	n := notify.New(
//	    notify.WithDuration(100*time.Millisecond),
//	    notify.WithClock(clock),
//	)
//	n.Mount()
//
//	clock.Advance(50 * time.Millisecond)
//	n.HandleMouseEnter()
//	n.HandleMouseLeave()
//	clock.Advance(50 * time.Millisecond)
//
//	if !n.Visible() { ... }
//
// Scheduled callbacks fire synchronously inside Advance, in deadline
// order, so assertions immediately after Advance observe post-expiry
// state.
//
// Keys simulates the global keydown source:
//
//	keys := vtest.NewKeys()
//	n := notify.New(notify.WithKeySource(keys), ...)
//	n.Mount()
//	keys.Press("Escape")
package vtest
