package host

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/notify/pkg/notify"
)

// Transport is the client connection a session writes to. A gorilla
// *websocket.Conn satisfies it. Writes are serialized by the session.
type Transport interface {
	WriteJSON(v any) error
	Close() error
}

// Session holds the live notifications of one connected client and the
// event loop that drives them.
type Session struct {
	id        string
	transport Transport
	logger    *slog.Logger
	clock     notify.Clock
	metrics   *notify.Metrics

	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool

	writeMu sync.Mutex

	mu            sync.Mutex
	notifications map[string]*notify.Notification
}

const dispatchBuffer = 64

func newSession(transport Transport, logger *slog.Logger, clock notify.Clock, metrics *notify.Metrics) *Session {
	id := newID()
	return &Session{
		id:            id,
		transport:     transport,
		logger:        logger.With("session", id),
		clock:         clock,
		metrics:       metrics,
		dispatchCh:    make(chan func(), dispatchBuffer),
		done:          make(chan struct{}),
		notifications: make(map[string]*notify.Notification),
	}
}

// newID returns a short random session or notification identifier.
func newID() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		panic("host: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Run processes dispatched functions until the session closes. Every
// controller mutation funnels through here, so controllers never need
// their own locking against client events.
func (s *Session) Run() {
	for {
		select {
		case fn := <-s.dispatchCh:
			s.execute(fn)
		case <-s.done:
			return
		}
	}
}

// execute runs one dispatched function, recovering panics so a broken
// callback cannot take down the loop.
func (s *Session) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panic", "panic", r)
		}
	}()
	fn()
}

// Dispatch enqueues fn onto the session event loop. Functions enqueued
// after Close are dropped.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// Notify shows a notification with the given message and returns its id.
// The controller is mounted on the session loop and the show event is
// emitted to the client.
func (s *Session) Notify(message string, opts ...notify.Option) string {
	return s.NotifyWithTitle("", message, opts...)
}

// NotifyWithTitle shows a notification with a title line above the message.
func (s *Session) NotifyWithTitle(title, message string, opts ...notify.Option) string {
	id := newID()

	s.Dispatch(func() {
		n := s.build(id, opts)

		s.mu.Lock()
		s.notifications[id] = n
		s.mu.Unlock()

		n.Mount()
		s.Emit(EventName, showDetail(id, n, title, message))
	})

	return id
}

// build assembles a controller wired to this session: dispatch re-enters
// the loop, progress ticks and teardown are forwarded to the client, and
// the notification unregisters itself on destroy.
func (s *Session) build(id string, opts []notify.Option) *notify.Notification {
	wired := append([]notify.Option{
		notify.WithClock(s.clock),
		notify.WithDispatch(s.Dispatch),
		notify.WithLogger(s.logger),
		notify.WithMetrics(s.metrics),
		notify.WithOnProgress(func(fraction float64) {
			s.Emit(EventName, progressDetail(id, fraction))
		}),
	}, opts...)

	return notify.New(append(wired, notify.WithOnDestroy(func() {
		s.mu.Lock()
		delete(s.notifications, id)
		s.mu.Unlock()
		s.Emit(EventName, closeDetail(id))
	}))...)
}

// Emit writes one event frame to the client. Safe from any goroutine.
func (s *Session) Emit(event string, detail map[string]any) {
	if s.closed.Load() {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.transport.WriteJSON(emitFrame{Event: event, Detail: detail}); err != nil {
		s.logger.Error("write error", "error", err)
	}
}

// HandleRaw decodes a client frame and routes it on the session loop.
// Undecodable frames are logged and dropped.
func (s *Session) HandleRaw(data []byte) {
	ev, err := DecodeClientEvent(data)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		return
	}
	s.Dispatch(func() { s.route(ev) })
}

// route delivers one client event to its notification. Runs on the loop.
func (s *Session) route(ev ClientEvent) {
	s.mu.Lock()
	n, ok := s.notifications[ev.ID]
	s.mu.Unlock()
	if !ok {
		s.logger.Warn("event for unknown notification", "id", ev.ID, "name", ev.Name)
		return
	}

	switch ev.Name {
	case ClientMouseEnter:
		n.HandleMouseEnter()
	case ClientMouseLeave:
		n.HandleMouseLeave()
	case ClientKeyDown:
		n.HandleKey(ev.Key)
	case ClientClick:
		n.HandleBodyClick()
	case ClientAction:
		s.activate(ev.ID, n, ev.Label)
	case ClientClose:
		n.Close()
	default:
		s.logger.Warn("unknown event name", "name", ev.Name)
	}
}

// activate finds the rendered action by label and runs it, pushing the
// disabled state transition to the client.
func (s *Session) activate(id string, n *notify.Notification, label string) {
	for _, a := range n.Actions() {
		if a.Label != label {
			continue
		}
		a.Activate()
		s.Emit(EventName, actionStateDetail(id, label, a.Disabled()))
		return
	}
	s.logger.Warn("event for unknown action", "id", id, "label", label)
}

// Dismiss closes one notification by id. Returns ErrUnknownNotification
// when the session holds no notification with that id; the close itself
// runs on the session loop.
func (s *Session) Dismiss(id string) error {
	s.mu.Lock()
	n, ok := s.notifications[id]
	s.mu.Unlock()
	if !ok {
		return ErrUnknownNotification
	}

	s.Dispatch(func() { n.Close() })
	return nil
}

// Active returns the number of live notifications.
func (s *Session) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Close tears down the session: all notifications close, the loop stops,
// and the transport is closed. Idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)

	s.mu.Lock()
	open := make([]*notify.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		open = append(open, n)
	}
	s.notifications = make(map[string]*notify.Notification)
	s.mu.Unlock()

	for _, n := range open {
		n.Close()
	}

	if err := s.transport.Close(); err != nil {
		s.logger.Debug("transport close", "error", err)
	}
}
