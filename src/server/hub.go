package server

import (
	"context"
	"encoding/json"
	"net/http"

	"market-climber/src/dashboard"
	"market-climber/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case <-s.quit:
			for client := range s.clients {
				delete(s.clients, client)
				client.closeSend()
			}
			s.setConnections(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.setConnections(len(s.clients))

			// Send full state on connect
			s.stateMutex.RLock()
			initial := s.latestState.Clone()
			s.stateMutex.RUnlock()
			initial.Type = models.StateTypeInitial
			client.send <- initial

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				client.closeSend()
				s.setConnections(len(s.clients))
			}

		case state := <-s.broadcast:
			s.stateMutex.Lock()
			s.latestState = state
			s.stateMutex.Unlock()

			for client := range s.clients {
				if !s.deliver(client, state) {
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					client.closeSend()
				}
			}
			s.setConnections(len(s.clients))
		}
	}
}

// -----------------------------------------------------------------------------

// deliver queues the state (and movers for subscribed clients) without blocking
func (s *DashboardServer) deliver(client *Client, state models.MDashboardState) bool {
	select {
	case client.send <- state:
	default:
		return false
	}

	layout := client.Layout()
	if layout == "" || state.Snapshot == nil {
		return true
	}
	select {
	case client.send <- moversMessage(dashboard.SelectMovers(*state.Snapshot, layout)):
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) setConnections(n int) {
	s.stateMutex.Lock()
	s.connections = n
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Publish queues a new state for every connected client
func (s *DashboardServer) Publish(state models.MDashboardState) {
	select {
	case s.broadcast <- state:
	default:
		s.Logger.Warning("Broadcast queue full, dropping state #%d", state.Sequence)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan interface{}, 256),
	}

	select {
	case s.register <- client:
	case <-s.quit:
		conn.Close()
		return
	}
	s.Logger.Debug("Client %s connected from %s", client.id, c.ClientIP())

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	switch cmd.Command {
	case "refresh":
		// Coalesce: one upstream call at a time, however many clients ask.
		// The resulting state reaches every client through Publish.
		if s.Dashboard.State().Refreshing || !s.wsRefreshing.CompareAndSwap(false, true) {
			s.Logger.Debug("Refresh already running, ignoring request from client %s", client.id)
			return
		}
		go func() {
			defer s.wsRefreshing.Store(false)
			s.Dashboard.Refresh(context.Background())
		}()

	case "subscribe":
		layout, err := dashboard.ParseLayout(cmd.Layout, s.Config.Dashboard.DefaultLayout)
		if err != nil {
			client.trySend(errorMessage(err.Error()))
			return
		}
		client.SetLayout(layout)

		if snap, ok := s.currentSnapshot(); ok {
			client.trySend(moversMessage(dashboard.SelectMovers(snap, layout)))
		}

	default:
		client.trySend(errorMessage("unknown command: " + cmd.Command))
	}
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) currentSnapshot() (models.MMarketSnapshot, bool) {
	st := s.Dashboard.State()
	if st.Snapshot == nil {
		return models.MMarketSnapshot{}, false
	}
	return *st.Snapshot, true
}

// -----------------------------------------------------------------------------

func moversMessage(m models.MMovers) gin.H {
	return gin.H{"type": "MOVERS", "movers": m}
}

func errorMessage(msg string) gin.H {
	return gin.H{"type": "ERROR", "error": msg}
}
