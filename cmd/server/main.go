package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/command-center/backend/internal/action"
	"github.com/command-center/backend/internal/config"
	"github.com/command-center/backend/internal/dashboard"
	"github.com/command-center/backend/internal/frontend"
	"github.com/command-center/backend/internal/server"
	"github.com/command-center/backend/internal/stream"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	host := flag.String("host", "", "Override listen host")
	debug := flag.Bool("debug", false, "Verbose router logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	status := dashboard.NewStatusProbe(cfg.Status.Command, cfg.Status.Args, cfg.Status.Timeout)
	var hostProbe dashboard.HostProber
	if cfg.Status.HostMetrics {
		hostProbe = dashboard.NewHostProbe()
	}

	aggregator := dashboard.NewAggregator(cfg.Sources.TasksFile, cfg.Sources.CostLog, status, hostProbe, cfg.Mode.HourShift)
	hub := stream.NewHub(cfg.Stream.BroadcastInterval, cfg.Stream.MaxConnections)
	dispatcher := action.NewDispatcher(status, hub)

	static := frontend.Source(cfg.Server.StaticDir)
	if frontend.Embedded() == nil {
		log.Printf("No embedded frontend, serving index.html from %s", cfg.Server.StaticDir)
	}

	srv := server.New(aggregator, hub, dispatcher, static, cfg.Stream.SendBuffer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	log.Printf("Command Center starting (tasks=%s costs=%s status=%s)",
		cfg.Sources.TasksFile, cfg.Sources.CostLog, cfg.Status.Command)

	if err := srv.ListenAndServe(ctx, cfg.Addr()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Shut down cleanly")
}
