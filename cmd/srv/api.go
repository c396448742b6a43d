package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quinty-io/backend/internal/chain"
	"github.com/quinty-io/backend/internal/domain/cron"
	"github.com/quinty-io/backend/internal/middleware"
	"github.com/quinty-io/backend/internal/model"
	"github.com/quinty-io/backend/pkg/kafka"
	"github.com/quinty-io/backend/pkg/pubsub"
	"github.com/quinty-io/backend/pkg/router"
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadStorage()
	s.loadEndpoint()
	s.loadPublisher()
	s.loadRepos()
	s.loadChain()
	s.loadSearchCaller()
	s.loadIndexer()
	s.loadDomains()
	s.loadRouter()

	// The snapshot lives in process memory, so this process re-derives it
	// itself and applies events published by the watcher.
	cronJobManager := cron.NewCronJobManager()
	go cronJobManager.Start(
		s.ctx,
		cron.NewReloadSnapshotCronJob(
			s.aggregator, s.leaderboard, xcontext.Configs(s.ctx).Blockchain.ReloadFrequency),
		cron.NewDeadlineRolloverCronJob(s.aggregator, 0),
	)

	subscriber := kafka.NewSubscriber(
		"api",
		[]string{xcontext.Configs(s.ctx).Kafka.Addr},
		[]string{model.ChainEventTopic},
		s.handleChainEvent,
	)
	go subscriber.Subscribe(s.ctx)

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

// handleChainEvent mirrors the watcher invalidation policy for events arriving
// over the message queue. Creation events only top up above the highest known
// id, anything mutating nested state re-derives the whole read-model.
func (s *srv) handleChainEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event chain.Event
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal chain event: %v", err)
		return
	}

	var err error
	switch {
	case event.Kind == chain.EventKindStateChange:
		if err = s.aggregator.ReloadAll(ctx); err == nil {
			err = s.leaderboard.Invalidate(ctx)
		}

	case event.Name == chain.EventBountyCreated:
		if err = s.aggregator.TopUpBounties(ctx); err == nil {
			err = s.leaderboard.Invalidate(ctx)
		}

	case event.Name == chain.EventAirdropCreated:
		err = s.aggregator.TopUpQuests(ctx)

	case event.Name == chain.EventDisputeOpened:
		err = s.aggregator.TopUpDisputes(ctx)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply event %s: %v", event.Name, err)
	}
}

func (s *srv) loadRouter() {
	var err error
	s.router, err = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	if err != nil {
		panic(err)
	}

	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.WithVerifyToken())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetAccessToken())
	{
		router.GET(authRouter, "/wallet/login", s.authDomain.WalletLogin)
		router.GET(authRouter, "/wallet/verify", s.authDomain.WalletVerify)
		router.GET(authRouter, "/oauth2/verify", s.authDomain.OAuth2Verify)
	}

	// These following APIs need authentication with only Access Token.
	onlyTokenAuthRouter := s.router.Branch()
	onlyTokenAuthRouter.Before(middleware.Authenticate())
	{
		router.GET(onlyTokenAuthRouter, "/getMe", s.userDomain.GetMe)
		router.POST(onlyTokenAuthRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.POST(onlyTokenAuthRouter, "/trackTransaction", s.blockchainDomain.TrackTransaction)
		router.POST(onlyTokenAuthRouter, "/uploadImage", s.fileDomain.UploadImage)
		router.POST(onlyTokenAuthRouter, "/logout", s.authDomain.Logout)
	}

	// Public API.
	router.GET(s.router, "/getListBounty", s.bountyDomain.GetList)
	router.GET(s.router, "/getBounty", s.bountyDomain.Get)
	router.POST(s.router, "/createBountyDraft", s.bountyDomain.CreateDraft)
	router.GET(s.router, "/getListQuest", s.questDomain.GetList)
	router.GET(s.router, "/getQuest", s.questDomain.Get)
	router.POST(s.router, "/prepareEntry", s.questDomain.PrepareEntry)
	router.GET(s.router, "/getListDispute", s.disputeDomain.GetList)
	router.GET(s.router, "/getDispute", s.disputeDomain.Get)
	router.POST(s.router, "/prepareVote", s.disputeDomain.PrepareVote)
	router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	router.GET(s.router, "/getHistory", s.historyDomain.GetHistory)
	router.GET(s.router, "/getUserProfile", s.userDomain.GetProfile)
	router.GET(s.router, "/getUsername", s.userDomain.GetUsername)
	router.GET(s.router, "/getTransaction", s.blockchainDomain.GetTransaction)
	router.GET(s.router, "/getMetadata", s.blockchainDomain.GetMetadata)
}
