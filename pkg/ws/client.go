package ws

import (
	"github.com/gorilla/websocket"
)

type Client struct {
	conn    *websocket.Conn
	channel string
	send    chan []byte
}

func NewClient(conn *websocket.Conn, channel string) *Client {
	if conn == nil {
		return nil
	}

	return &Client{
		conn:    conn,
		channel: channel,
		send:    make(chan []byte, 128),
	}
}

// RunWriter pumps messages from the hub to the websocket connection. It
// returns when the send channel is closed or the connection breaks.
func (c *Client) RunWriter() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// RunReader drains the connection so control frames are processed, and
// unregisters from the hub when the peer goes away.
func (c *Client) RunReader(hub *Hub) {
	defer hub.Unregister(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
