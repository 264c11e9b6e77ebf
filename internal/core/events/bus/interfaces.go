package bus

// EventBus is a synchronous, in-process pub/sub bus used between systems
// within a frame.
//
// - Handlers subscribe by Event.Type() within a topic; "" is the default topic.
// - Publish calls handlers in the caller goroutine, in subscription order.
// - Handler errors are joined and returned from Publish/PublishBatch.
// - Filters run before delivery; a rejected event is dropped without error.
type EventBus interface {
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	Unsubscribe(Subscription) error

	PublishWithFilters(event Event, filters ...EventFilter) error

	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	PublishToTopic(topic string, event Event) error
	PublishBatch(topic string, events ...Event) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
	GetTopics() []TopicInfo
}

// Event is an immutable message carried by the bus. Frame is the simulation
// frame it was raised in.
type Event interface {
	Type() string
	Source() string
	Frame() uint64
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	Topic() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return
// quickly.
type EventBusObserver interface {
	OnPublish(topic, eventType string, event Event)
	OnDelivered(topic, eventType string, handlers int, err error)
}

// EventBusMetrics is only updated while at least one observer is registered.
type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
}

type TopicInfo struct {
	Name       string
	EventTypes int
	Subs       int
}
