package events

// Observer receives board change notifications.
// OnEvent runs on the publisher's goroutine and must not block.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}

// Publisher is what coordinators depend on to announce resolved jobs.
type Publisher interface {
	Publish(Event)
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)
