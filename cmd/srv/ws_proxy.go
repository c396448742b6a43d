package main

import (
	"context"
	"net/http"
	"time"

	"github.com/quinty-io/backend/internal/domain"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/kafka"
	"github.com/quinty-io/backend/pkg/pubsub"
	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWsProxy(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.wsDomain = domain.NewWsDomain()

	cfg := xcontext.Configs(s.ctx)

	// One subscriber per topic since the pack does not carry its topic.
	eventSubscriber := kafka.NewSubscriber(
		"proxy-events",
		[]string{cfg.Kafka.Addr},
		[]string{model.ChainEventTopic},
		func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
			s.wsDomain.Broadcast(domain.WsChannelEvents, pack.Msg)
		},
	)
	receiptSubscriber := kafka.NewSubscriber(
		"proxy-receipts",
		[]string{cfg.Kafka.Addr},
		[]string{model.ReceiptTransactionTopic},
		func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
			s.wsDomain.Broadcast(domain.WsChannelReceipts, pack.Msg)
		},
	)

	go eventSubscriber.Subscribe(s.ctx)
	go receiptSubscriber.Subscribe(s.ctx)
	go s.wsDomain.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ctx := xcontext.WithConfigs(r.Context(), cfg)
		ctx = xcontext.WithLogger(ctx, xcontext.Logger(s.ctx))
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		if err := s.wsDomain.Serve(ctx); err != nil {
			if werr := router.WriteJson(w, router.NewErrorResponse(err)); werr != nil {
				xcontext.Logger(ctx).Errorf("Unable to write json: %v", werr)
			}
		}
	})

	s.server = &http.Server{
		Addr:    cfg.WsServer.Address(),
		Handler: mux,
	}

	xcontext.Logger(s.ctx).Infof("Starting websocket proxy on port %s", cfg.WsServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}
