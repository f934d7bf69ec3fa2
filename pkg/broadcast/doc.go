// Package broadcast provides a non-blocking in-memory pub/sub primitive.
//
// The live-session notification channel keeps one broadcaster per user
// with an active real-time session; transport layers (SSE, WebSocket)
// subscribe and stream messages to the connected client:
//
//	sub := hub.Subscribe(ctx, userID)
//	defer sub.Close()
//	for msg := range sub.Receive(ctx) {
//	    // push msg.Data to the socket
//	}
//
// Slow consumers never block a broadcast; messages are dropped for them
// instead.
package broadcast
