package main

import (
	"github.com/quinty-io/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWatcher(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadEndpoint()
	s.loadPublisher()
	s.loadRepos()
	s.loadChain()
	s.loadIndexer()

	s.watcher.Start(s.ctx)

	xcontext.Logger(s.ctx).Infof("Starting receipt tracker...")
	s.receiptTracker.Start(s.ctx)
	return nil
}
