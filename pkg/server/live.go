package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/logging"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 2 * pingInterval
	writeWait    = 5 * time.Second
	maxMessage   = 4096
)

// Reply is sent to live clients for every parameter message.
type Reply struct {
	Result      *xform.Result `json:"result,omitempty"`
	Description string        `json:"description,omitempty"`
	Cells       *Cells        `json:"cells,omitempty"`
	Plot        string        `json:"plot,omitempty"`
	PDF         string        `json:"pdf,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Cells are the display values for the matrix.
type Cells struct {
	Matrix      [3][3]string `json:"matrix"`
	Determinant string       `json:"determinant"`
}

// newReply evaluates a single client message.
func newReply(msg []byte) Reply {
	var p xform.Params
	err := json.Unmarshal(msg, &p)
	if err != nil {
		return Reply{Error: xform.NewValidationError("invalid message: %v", err).Error()}
	}

	r, err := xform.Evaluate(p)
	if err != nil {
		return Reply{Error: err.Error()}
	}

	enc := Query(p).Encode()
	return Reply{
		Result:      &r,
		Description: p.Description(),
		Cells: &Cells{
			Matrix:      r.Matrix.Cells(),
			Determinant: xform.FormatValue(r.Determinant),
		},
		Plot: "/plot.png?" + enc,
		PDF:  "/plot.pdf?" + enc,
	}
}

// live is a single websocket connection.
type live struct {
	conn    *websocket.Conn
	replies chan Reply
	done    chan struct{}
	quit    chan struct{}
	exit    <-chan struct{}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already sent an error response
		logging.Warning("Websocket upgrade failed: %v", err)
		return
	}
	logging.Debug("Live connection from %v", r.RemoteAddr)

	l := &live{
		conn:    conn,
		replies: make(chan Reply),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
		exit:    s.exit,
	}
	go l.read()
	l.loop()
}

// loop writes replies and keeps the connection alive with pings.
// It returns when the client goes away or the server shuts down.
func (l *live) loop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer l.conn.Close()
	defer close(l.quit)

	for {
		select {
		case <-l.done:
			return
		case <-l.exit:
			// close the connection by sending a close message
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
			err := l.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			if err != nil {
				logging.Debug("write close: %v", err)
				return
			}
			// wait for the client to close the connection (or timeout)
			select {
			case <-l.done:
			case <-time.After(time.Second):
			}
			return
		case reply := <-l.replies:
			l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := l.conn.WriteJSON(reply)
			if err != nil {
				logging.Warning("write: %v", err)
				return
			}
		case <-ticker.C:
			err := l.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if err != nil {
				logging.Debug("ping: %v", err)
				return
			}
		}
	}
}

// read evaluates each incoming message and hands the reply to the loop.
// One message is processed at a time.
func (l *live) read() {
	defer close(l.done)

	l.conn.SetReadLimit(maxMessage)
	l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		return l.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warning("read: %v", err)
			}
			return
		}
		l.conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := newReply(msg)
		select {
		case l.replies <- reply:
		case <-l.quit:
			return
		}
	}
}
