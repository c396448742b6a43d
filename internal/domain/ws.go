package domain

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/quinty-io/backend/pkg/errorx"
	"github.com/quinty-io/backend/pkg/ws"
	"github.com/quinty-io/backend/pkg/xcontext"
)

const (
	WsChannelEvents   = "events"
	WsChannelReceipts = "receipts"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsDomain pushes chain events and transaction receipts to connected
// browsers. Messages originate from the watcher process and arrive here over
// the message queue.
type WsDomain interface {
	Serve(ctx context.Context) error
	Run()
	Broadcast(channel string, message []byte)
}

type wsDomain struct {
	hub *ws.Hub
}

func NewWsDomain() *wsDomain {
	return &wsDomain{hub: ws.NewHub()}
}

func (d *wsDomain) Serve(ctx context.Context) error {
	req := xcontext.HTTPRequest(ctx)
	channel := req.URL.Query().Get("channel")
	if channel == "" {
		channel = WsChannelEvents
	}

	if channel != WsChannelEvents && channel != WsChannelReceipts {
		return errorx.New(errorx.BadRequest, "Unknown channel %s", channel)
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), req, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade connection: %v", err)
		return errorx.Unknown
	}

	client := ws.NewClient(conn, channel)
	d.hub.Register(client)
	go client.RunWriter()
	go client.RunReader(d.hub)

	return nil
}

func (d *wsDomain) Run() {
	d.hub.Run()
}

func (d *wsDomain) Broadcast(channel string, message []byte) {
	d.hub.BroadcastByChannel(channel, message)
}
