package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/segskip/segskip/log"
)

// EventCallback receives property changes as (name, value) and other events as (event, nil).
// It runs on the listener's goroutine.
type EventCallback func(name string, data any)

// EventListener keeps one connection to mpv open, observes properties on it and
// decodes the event stream. Observers are per connection in mpv, so
// registering and reading share the same socket.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a listener for the given socket. Nothing is read until Start.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		done:       make(chan struct{}),
	}
}

// Start connects, observes time-pos, pause, duration and path, and begins reading events.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, requestIDs.Add(1), []any{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop(conn)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection. The read loop ends and Done is closed.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}
	el.listening = false
	el.conn.Close()
}

// Done is closed once the event stream ends, either through Stop or because mpv went away.
func (el *EventListener) Done() <-chan struct{} {
	return el.done
}

func (el *EventListener) readLoop(conn net.Conn) {
	defer close(el.done)
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := newScanner(conn)
	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent dispatches one line of the event stream. Replies and unparseable lines are dropped.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return
	}

	if el.callback == nil || msg.Event == "" {
		return
	}

	if msg.Event == "property-change" {
		if msg.Name != "" {
			el.callback(msg.Name, msg.Data)
		}
		return
	}

	el.callback(msg.Event, nil)
}
