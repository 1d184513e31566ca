package debugtap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/1siamBot/adventure-engine/engine/event"
)

// Message is what every client receives for each dispatched event
type Message struct {
	Seq   uint64          `json:"seq"`
	Kind  string          `json:"kind"`
	Event json.RawMessage `json:"event"`
}

// clientQueue is how many messages may wait for a slow client before
// further ones are dropped
const clientQueue = 256

// Server streams every event dispatched by the attached managers to
// websocket clients. Publishing never blocks the game loop.
type Server struct {
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]chan []byte
	nextID  uint64

	seq     atomic.Uint64
	dropped atomic.Uint64
}

func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		log:     logger,
		clients: make(map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev tool
		},
	}
}

// Attach taps m; detach with m.Unsubscribe on the returned handle
func (s *Server) Attach(m *event.Manager) event.Handle {
	return m.Tap(s.Publish)
}

// Publish encodes ev and queues it for every connected client
func (s *Server) Publish(ev any) {
	s.mu.Lock()
	n := len(s.clients)
	s.mu.Unlock()
	if n == 0 {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		body, _ = json.Marshal(fmt.Sprintf("%+v", ev))
	}
	msg, err := json.Marshal(Message{
		Seq:   s.seq.Add(1),
		Kind:  event.KindOf(ev).String(),
		Event: body,
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, out := range s.clients {
		select {
		case out <- msg:
		default:
			s.dropped.Add(1)
		}
	}
}

// Clients returns the number of connected clients
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped returns how many messages slow clients missed
func (s *Server) Dropped() uint64 { return s.dropped.Load() }

func (s *Server) register() (uint64, chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	out := make(chan []byte, clientQueue)
	s.clients[s.nextID] = out
	return s.nextID, out
}

func (s *Server) unregister(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

// Handler upgrades the request and streams messages until the client leaves
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out := s.register()
		defer s.unregister(id)
		s.log.Printf("client %d connected from %s", id, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop: clients only send close frames, reading detects them.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.log.Printf("client %d disconnected", id)
	}
}

// ListenAndServe serves the tap on addr at /events until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/events", s.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Printf("event tap listening on ws://%s/events", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
