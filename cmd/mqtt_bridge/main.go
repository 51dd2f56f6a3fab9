// Command mqtt_bridge runs the MQTT-to-Prometheus bridge: it loads a YAML
// configuration file, connects to an MQTT broker, transforms incoming
// messages into metrics, and serves them on a Prometheus/OpenMetrics
// scrape endpoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/cache"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/config"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/dispatch"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/httpserver"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/mqttbroker"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/render"
)

var (
	confFileVar = pflag.StringP("conf", "f", "mqtt_bridge.yaml", "Path to the configuration file")
	logFileVar  = pflag.StringP("log", "l", "", "Path to the log file (defaults to stderr)")
	noRunVar    = pflag.BoolP("no-run", "n", false, "Validate configuration and exit")
	helpVar     = pflag.BoolP("help", "h", false, "Show usage")
)

func main() {
	pflag.Parse()

	if *helpVar {
		pflag.Usage()
		os.Exit(0)
	}

	file, err := config.Load(*confFileVar)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *logFileVar != "" {
		file.MqttBridge.Logging.Filename = *logFileVar
	}

	log, err := logging.New(logging.Config{Filename: file.MqttBridge.Logging.Filename, Level: file.MqttBridge.Logging.Level})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	built, err := config.Build(file, log)
	if err != nil {
		log.Errorf("configuration error: %v", err)
		os.Exit(1)
	}

	if *noRunVar {
		log.Info("configuration OK")
		os.Exit(0)
	}

	run(built, log)
}

func run(built *config.Built, log logging.Logger) {
	c := cache.New()
	loop := dispatch.New(built.Automaton, c, log)

	broker := mqttbroker.New(built.Mqtt, built.Subscriptions, loop.OnMessage, log)

	accessLogger, err := logging.New(built.AccessLog)
	var accessLog logging.Logger = accessLogger
	if err != nil {
		log.Warnf("access log: %v, falling back to application log", err)
		accessLog = log
	}

	renderer := render.New(built.RenderStyle)
	server := httpserver.New(httpserver.Config{Port: built.HTTPPort, URI: built.HTTPURI}, c, renderer, accessLog)

	go broker.Start()

	go func() {
		if err := server.ListenAndServe(); err != nil {
			log.Errorf("http server: %v", err)
		}
	}()

	waitForShutdown(log, broker, server)
}

// waitForShutdown blocks until SIGINT or SIGTERM, then shuts down the
// broker and HTTP server cleanly. The first signal restores the default
// disposition, so a second signal of either kind kills a stuck shutdown,
// per SPEC_FULL.md supplemented feature 4 (yy_mqtt_bridge.cpp).
func waitForShutdown(log logging.Logger, broker *mqttbroker.Broker, server *httpserver.Server) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Infof("received %s, shutting down", sig)
	signal.Reset(syscall.SIGINT, syscall.SIGTERM)

	broker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("http server shutdown: %v", err)
	}
}
