// Package async provides a small Future primitive for spawning
// concurrent work with explicit join points.
//
// The notification dispatcher uses it to fan one event out to several
// delivery channels: each channel runs in its own goroutine and its
// individual failure is captured on the future instead of being lost
// to an unjoined goroutine.
//
//	fut := async.Async(ctx, event, channel.Deliver)
//	outcome, err := fut.Await()
package async
