// Command dogworld-server runs the authoritative game server: it loads
// a map/config file, starts the HTTP adapter, and — outside test mode
// — drives a periodic simulation tick until asked to stop.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"dogworld-server/internal/config"
	"dogworld-server/internal/game"
	"dogworld-server/internal/httpapi"
	"dogworld-server/internal/model"
	"dogworld-server/internal/players"
	"dogworld-server/internal/snapshot"
)

func main() {
	cmd := &cli.Command{
		Name:  "dogworld-server",
		Usage: "run the dog world game server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-file", Aliases: []string{"c"}, Required: true, Usage: "path to the map/config JSON file"},
			&cli.StringFlag{Name: "www-root", Aliases: []string{"w"}, Required: true, Usage: "static file root"},
			&cli.IntFlag{Name: "tick-period", Aliases: []string{"t"}, Usage: "milliseconds between ticks; omit for test mode"},
			&cli.BoolFlag{Name: "randomize-spawn-points", Usage: "spawn dogs at random points on random roads"},
			&cli.StringFlag{Name: "state-file", Usage: "path to the persistence snapshot"},
			&cli.IntFlag{Name: "save-state-period", Usage: "milliseconds between snapshot saves; requires --state-file"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	srvCfg := config.ServerConfig{
		ConfigFile:      cmd.String("config-file"),
		WWWRoot:         cmd.String("www-root"),
		RandomizeSpawn:  cmd.Bool("randomize-spawn-points"),
		StateFile:       cmd.String("state-file"),
		SaveStatePeriod: time.Duration(cmd.Int("save-state-period")) * time.Millisecond,
	}
	if cmd.IsSet("tick-period") {
		srvCfg.TickPeriod = time.Duration(cmd.Int("tick-period")) * time.Millisecond
	} else {
		srvCfg.TestMode = true
	}
	if err := srvCfg.ApplyEnv(); err != nil {
		return err
	}

	log := newLogger(srvCfg.LogLevel)

	gameData, err := config.LoadGameFile(srvCfg.ConfigFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load config file")
	}

	g := game.New(gameData.LootGenConfig, time.Now().UnixNano(), log.WithField("component", "game"))
	lootKinds := make(map[string][]model.LootKind)
	for _, entry := range gameData.Entries {
		entry.Session.RandomizeSpawn = srvCfg.RandomizeSpawn
		if err := g.AddMap(entry.Map, entry.Session, entry.LootKinds); err != nil {
			log.WithError(err).Fatal("failed to register map")
		}
		lootKinds[entry.Map.ID] = entry.LootKinds
	}

	reg := players.NewRegistry(log.WithField("component", "players"))

	if srvCfg.StateFile != "" {
		if err := snapshot.Load(srvCfg.StateFile, g, reg); err != nil {
			log.WithError(err).Error("failed to load snapshot, starting with empty state")
		}
	}

	server := httpapi.New(g, reg, srvCfg.WWWRoot, srvCfg.TestMode, lootKinds, log.WithField("component", "http"))
	httpServer := &http.Server{
		Addr:         srvCfg.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopTicker := make(chan struct{})
	tickerDone := make(chan struct{})
	if !srvCfg.TestMode {
		go runTicker(sigCtx, g, srvCfg.TickPeriod, stopTicker, tickerDone, log)
	} else {
		close(tickerDone)
	}

	stopSaver := make(chan struct{})
	saverDone := make(chan struct{})
	if srvCfg.StateFile != "" && srvCfg.SaveStatePeriod > 0 {
		go runSaver(g, reg, srvCfg.StateFile, srvCfg.SaveStatePeriod, stopSaver, saverDone, log)
	} else {
		close(saverDone)
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srvCfg.Addr()).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-sigCtx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.WithError(err).Error("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	close(stopTicker)
	<-tickerDone
	close(stopSaver)
	<-saverDone

	if srvCfg.StateFile != "" {
		g.Lock()
		err := snapshot.Save(srvCfg.StateFile, g, reg)
		g.Unlock()
		if err != nil {
			log.WithError(err).Error("final snapshot save failed")
		}
	}

	log.Info("stopped cleanly")
	return nil
}

// runTicker fires every period and advances the game by the actual
// wall-clock delta since the previous firing, not the nominal period.
func runTicker(ctx context.Context, g *game.Game, period time.Duration, stop <-chan struct{}, done chan<- struct{}, log *logrus.Entry) {
	defer close(done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			g.Lock()
			g.Tick(delta)
			g.Unlock()
		}
	}
}

// runSaver periodically writes a snapshot. Failures are logged; the
// server continues running with its in-memory state.
func runSaver(g *game.Game, reg *players.Registry, path string, period time.Duration, stop <-chan struct{}, done chan<- struct{}, log *logrus.Entry) {
	defer close(done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.Lock()
			err := snapshot.Save(path, g, reg)
			g.Unlock()
			if err != nil {
				log.WithError(err).Error("periodic snapshot save failed")
			}
		}
	}
}

func newLogger(level string) *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(parseLevel(level))
	return logrus.NewEntry(log)
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "TRACE":
		return logrus.TraceLevel
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "WARN":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "FATAL":
		return logrus.FatalLevel
	default:
		return logrus.DebugLevel
	}
}
