package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Quinty"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      server.startWsProxy,
			Name:        "proxy",
			Usage:       "Start service proxy",
			Flags:       []cli.Flag{},
			Category:    "Websocket",
			Description: `Used to direct connection to client via websocket.`,
		},
		{
			Action:      server.startWatcher,
			Name:        "watcher",
			Usage:       "Start service watcher",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to start worker that scans blocks for contract logs and polls transaction receipts.`,
		},
	}

	s.app = app
}
