// Package messaging defines interfaces for in-process and real-time eventing.
package messaging

// Publisher is the write side of the event bus. Components emit events
// without knowing who listens.
type Publisher interface {
	Publish(event Event)
}

// Bus is the full event bus contract used by the websocket bridge.
type Bus interface {
	Publisher
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)
}
