package event

// Handler consumes routed fight events with a context value T
type Handler[T any] interface {
	HandleEvent(ctx T, ev FightEvent)
	// EventTypes lists the types the handler is registered for
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a Handler for the given types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, ev FightEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, ev FightEvent) { h.Fn(ctx, ev) }
func (h HandlerFunc[T]) EventTypes() []EventType           { return h.Types }

// Router drains a queue and dispatches each event to the handlers of its type
// Dispatch is single-threaded, handlers run in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(h Handler[T]) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes pending events and routes them, returning how many were consumed
func (r *Router[T]) DispatchAll(ctx T) int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for t
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
