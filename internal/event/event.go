// internal/event/event.go
package event

// EventType - тип события
type EventType string

// Event - структура события
type Event struct {
	Type EventType
	Data interface{} // Полезная нагрузка, см. types.go
}

// Listener - интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет подписать обычную функцию.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Any - подписка на все типы событий.
const Any EventType = "*"

// Dispatcher - диспетчер событий.
// События, поставленные в очередь во время тика, рассылаются только после Flush.
type Dispatcher struct {
	listeners map[EventType][]Listener
	queue     []Event
}

// NewDispatcher - создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe - подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe - отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch - немедленная отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
	if event.Type != Any {
		for _, listener := range d.listeners[Any] {
			listener.OnEvent(event)
		}
	}
}

// Queue откладывает событие до ближайшего Flush. Без диспетчера (nil) событие молча теряется.
func (d *Dispatcher) Queue(eventType EventType, data interface{}) {
	if d == nil {
		return
	}
	d.queue = append(d.queue, Event{Type: eventType, Data: data})
}

// Flush рассылает накопленные события в порядке постановки.
// События, поставленные подписчиками во время рассылки, уйдут в этом же Flush.
func (d *Dispatcher) Flush() {
	for len(d.queue) > 0 {
		batch := d.queue
		d.queue = nil
		for _, e := range batch {
			d.Dispatch(e)
		}
	}
}

// Discard drops queued events without delivering them.
func (d *Dispatcher) Discard() {
	d.queue = nil
}
