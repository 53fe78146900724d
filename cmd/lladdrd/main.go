package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/lladdrd/internal/api"
	"github.com/dmdmdm-nz/lladdrd/internal/ctl"
	"github.com/dmdmdm-nz/lladdrd/internal/netmon"
	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/runtime"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
	"github.com/dmdmdm-nz/lladdrd/pkg/cli"
)

func main() {
	// Parse command line flags
	cfg := cli.ParseFlags()

	// Configure logging
	setLogLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FullTimestamp:   true,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cfg.Command {
	case "get":
		err = runGet(cfg.Args)
	case "set":
		err = runSet(cfg.Args)
	case "monitor":
		err = runMonitor(ctx)
	case "serve":
		err = runServe(ctx, cfg)
	default:
		log.Fatalf("Unknown command %q", cfg.Command)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: lladdrd get <interface>")
	}
	name, err := nic.ParseIfName(args[0])
	if err != nil {
		return err
	}

	addr, err := ctl.GetLLAddr(sys.Unix{}, name)
	if err != nil {
		return err
	}

	fmt.Println(addr.String())
	return nil
}

func runSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: lladdrd set <interface> <lladdr>")
	}
	name, err := nic.ParseIfName(args[0])
	if err != nil {
		return err
	}
	addr, err := nic.ParseLLAddr(args[1])
	if err != nil {
		return err
	}

	requireRoot()

	if err := ctl.SetLLAddr(sys.Unix{}, name, addr); err != nil {
		return err
	}

	log.WithField("interface", name.String()).WithField("lladdr", addr.String()).
		Info("Changed link-level address")
	return nil
}

func runMonitor(ctx context.Context) error {
	netmonSvc := netmon.NewService(netmon.NewWatcher(), netmon.SystemEnumerator(sys.Unix{}))
	ch, unsub := netmonSvc.Subscribe()
	defer unsub()

	go func() {
		if err := netmonSvc.Start(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Link-level address monitoring failed")
		}
	}()
	defer netmonSvc.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			log.WithField("interface", ev.InterfaceName).
				WithField("linkIndex", ev.LinkIndex).
				WithField("lladdr", ev.LLAddr).
				Info(string(ev.Type))
		}
	}
}

func runServe(ctx context.Context, cfg *cli.Config) error {
	requireRoot()

	log.Infof("Config: Host=%s", cfg.Host)
	log.Infof("Config: Port=%d", cfg.Port)
	log.Infof("Config: LogLevel=%s", cfg.LogLevel)

	netmonSvc := netmon.NewService(netmon.NewWatcher(), netmon.SystemEnumerator(sys.Unix{}))
	apiSvc := api.NewService(cfg.Host, cfg.Port, netmonSvc, api.SocketControl{Sys: sys.Unix{}})

	// Start in dependency order: netmon -> api
	super := runtime.NewSupervisor()
	super.Add("netmon", func(ctx context.Context) error { return netmonSvc.Start(ctx) }, netmonSvc.Close)
	super.Add("api", func(ctx context.Context) error { return apiSvc.Start(ctx) }, apiSvc.Close)

	if err := super.Start(ctx); err != nil {
		return err
	}
	return super.Wait(ctx)
}

func requireRoot() {
	if os.Geteuid() != 0 {
		log.Fatal("This command must be run as root.")
	}
}

func setLogLevel(level string) {
	switch level {
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
