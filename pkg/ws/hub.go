package ws

// Hub maintains the set of active clients and broadcasts invalidation
// messages to them, grouped by channel ("bounties", "quests", ...).

type clients map[*Client]bool

type Hub struct {
	clients  clients
	channels map[string]clients

	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(clients),
		channels:   make(map[string]clients),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if _, ok := h.channels[client.channel]; !ok {
				h.channels[client.channel] = make(clients)
			}
			h.channels[client.channel][client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	delete(h.channels[client.channel], client)
	close(client.send)
}

func (h *Hub) BroadcastByChannel(channel string, message []byte) {
	for client := range h.channels[channel] {
		select {
		case client.send <- message:
		default:
			h.disconnect(client)
		}
	}
}
