package web

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/status"
)

const (
	// DefaultStatusInterval is how often each live client gets a fresh snapshot.
	DefaultStatusInterval = time.Second

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Feed pushes player events and periodic status snapshots to websocket clients.
type Feed struct {
	tracker  *status.Tracker
	interval time.Duration

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newFeed(tracker *status.Tracker, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	return &Feed{
		tracker:  tracker,
		interval: interval,
		clients:  make(map[*client]struct{}),
	}
}

// Record broadcasts a player event to every connected client. A client whose
// queue is full misses the event rather than stalling the main loop.
func (f *Feed) Record(event logic.Event) error {
	frame, err := eventFrame(event)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.send <- frame:
		default:
			log.Printf("web: live client %s is slow, dropping %s", c.conn.RemoteAddr(), event.Type)
		}
	}
	return nil
}

// Clients returns the number of connected live clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client and refuses new ones.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		close(c.send)
		delete(f.clients, c)
	}
	f.closed = true
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	if !f.add(c) {
		conn.Close()
		return
	}
	go f.writePump(c)
	f.readPump(c)
}

func (f *Feed) add(c *client) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.clients[c] = struct{}{}
	return true
}

func (f *Feed) remove(c *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; ok {
		close(c.send)
		delete(f.clients, c)
	}
}

// readPump discards client messages and notices when the peer goes away.
func (f *Feed) readPump(c *client) {
	defer func() {
		f.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: live client %s: %v", c.conn.RemoteAddr(), err)
			}
			return
		}
	}
}

func (f *Feed) writePump(c *client) {
	snapshots := time.NewTicker(f.interval)
	pings := time.NewTicker(pingPeriod)
	defer func() {
		snapshots.Stop()
		pings.Stop()
		c.conn.Close()
	}()

	if !write(c.conn, statusFrame(f.tracker.Snapshot())) {
		return
	}
	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if !write(c.conn, frame) {
				return
			}
		case <-snapshots.C:
			if !write(c.conn, statusFrame(f.tracker.Snapshot())) {
				return
			}
		case <-pings.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func write(conn *websocket.Conn, frame []byte) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, frame) == nil
}
