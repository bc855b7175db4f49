// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command padlocal-mapper converts newline-delimited PadLocal records into
// normalized puppet payloads. Room records are kept in the configured room
// store so that later "@all" mentions expand to the room's members.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	flag "maunium.net/go/mauflag"

	"github.com/vinceyyy/puppet-padlocal/pkg/connector"
)

// These are filled at build time with -ldflags.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  = flag.MakeFull("c", "config", "Path to the YAML config file", "").String()
	inputPath   = flag.MakeFull("i", "input", "Record file to read, - for stdin", "-").String()
	metricsAddr = flag.MakeFull("m", "metrics-listen", "Serve Prometheus metrics on this address", "").String()
	wantVersion = flag.MakeFull("v", "version", "Print the version and exit", "false").Bool()
	wantHelp, _ = flag.MakeHelpFlag()
)

func main() {
	flag.SetHelpTitles(
		"padlocal-mapper - convert PadLocal records to puppet payloads",
		"padlocal-mapper [-h] [-c <path>] [-i <path>] [-m <addr>]",
	)
	if err := flag.Parse(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		flag.PrintHelp()
		os.Exit(2)
	}
	if *wantHelp {
		flag.PrintHelp()
		return
	}
	if *wantVersion {
		fmt.Printf("padlocal-mapper %s (%s, built %s)\n", Tag, Commit, BuildTime)
		return
	}

	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "padlocal-mapper:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := cfg.Logging.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rooms, err := connector.OpenRoomStore(ctx, &cfg.Connector)
	if err != nil {
		return err
	}
	if closer, ok := rooms.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close room store")
			}
		}()
	}

	reg := prometheus.NewRegistry()
	metrics := connector.NewMetrics(reg)
	if *metricsAddr != "" {
		go serveMetrics(log, *metricsAddr, reg)
	}

	input, err := openInput(*inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	p := newPipeline(connector.NewMapper(&cfg.Connector, rooms, metrics, log), rooms, metrics, os.Stdout, log)
	log.Info().
		Str("input", *inputPath).
		Str("room_cache", cfg.Connector.RoomCache.Backend).
		Msg("Mapping records")
	stats, err := p.run(ctx, input)
	log.Info().
		Int("records", stats.records).
		Int("failed", stats.failed).
		Msg("Finished mapping records")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

func serveMetrics(log zerolog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics listener stopped")
	}
}
