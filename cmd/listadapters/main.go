// listadapters prints the network adapters an EtherCAT master could use on
// this machine, as found by the configured discovery backend.
//
// Probing adapters on Linux typically requires root or the CAP_NET_RAW
// capability:
//
//	sudo ./listadapters -backend native
//	sudo ./listadapters -backend system -json
//	sudo ./listadapters -s :8080
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yalefresne/ecoshw/internal/adapter"
	"github.com/yalefresne/ecoshw/internal/api"
	"github.com/yalefresne/ecoshw/internal/capture"
	"github.com/yalefresne/ecoshw/internal/config"
	"github.com/yalefresne/ecoshw/internal/oshw"
)

var configFile = flag.String("c", "", "configuration `file` (default: $ECOSHW_CONFIG, ./ecoshw.yaml, /etc/ecoshw/config.yaml)")
var backend = flag.String("backend", "", "discovery backend: native or system (overrides config)")
var asJSON = flag.Bool("json", false, "print adapters as JSON")
var pcapDevices = flag.Bool("pcap", false, "list raw libpcap devices instead of adapters")
var httpServe = flag.String("s", "", "serve the adapter list over http at [bindtohost][:]port")
var verbose = flag.Bool("v", false, "verbose logging")

// To be set via go build -ldflags "-X main.buildVersion=$(git describe --dirty) -X main.buildDate=$(date -u +%FT%TZ)"
var buildVersion = "unspecified"
var buildDate = "unknown"

func main() {
	flag.Parse()

	cfg, path, err := loadConfig()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	setupLogging(cfg.Log)
	if path != "" {
		log.Debugf("using config %s", path)
	}

	if *pcapDevices {
		if err := printPcapDevices(os.Stdout); err != nil {
			log.Fatalf("error listing libpcap devices: %v", err)
		}
		return
	}

	enum, err := oshw.New(cfg, log.StandardLogger())
	if err != nil {
		log.Fatalf("error creating %s enumerator: %v", cfg.Backend, err)
	}

	if cfg.HTTP.Listen != "" {
		serve(cfg.HTTP.Listen, enum)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ads := oshw.FindAdapters(ctx, enum, log.StandardLogger())
	defer ads.Release()

	if *asJSON {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		if err := e.Encode(ads); err != nil {
			log.Fatalf("error writing adapters: %v", err)
		}
		return
	}
	printAdapters(os.Stdout, cfg.Backend, ads)
}

func loadConfig() (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configFile != "" {
		cfg, path, err = config.LoadFromPath(*configFile)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if *backend != "" {
		cfg.Backend = *backend
	}
	if *httpServe != "" {
		cfg.HTTP.Listen = *httpServe
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, path, cfg.Validate()
}

func setupLogging(lc config.LogConfig) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", lc.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if lc.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
		})
	}
}

func printAdapters(w io.Writer, backend string, ads adapter.Adapters) {
	if len(ads) == 0 {
		fmt.Fprintf(w, "no adapters found by the %s backend (are you running with sufficient privileges?)\n", backend)
		return
	}

	fmt.Fprintf(w, "found %d adapter(s):\n\n", len(ads))
	for _, ad := range ads {
		fmt.Fprintf(w, "  name:        %s\n", ad.Name)
		if ad.Description != "" && ad.Description != ad.Name {
			fmt.Fprintf(w, "  description: %s\n", ad.Description)
		}
		fmt.Fprintln(w)
	}
}

func printPcapDevices(w io.Writer) error {
	ifaces, err := capture.FindInterfaces()
	if err != nil {
		return err
	}
	if len(ifaces) == 0 {
		fmt.Fprintln(w, "no interfaces found (are you running with sufficient privileges?)")
		return nil
	}

	fmt.Fprintf(w, "found %d interface(s):\n\n", len(ifaces))
	for _, iface := range ifaces {
		fmt.Fprintf(w, "  name:        %s\n", iface.Name)
		if iface.Description != "" {
			fmt.Fprintf(w, "  description: %s\n", iface.Description)
		}
		if iface.Flags&capture.FlagUp != 0 {
			fmt.Fprintf(w, "  state:       up\n")
		}
		if len(iface.Addresses) > 0 {
			fmt.Fprintf(w, "  addresses:   %s\n", strings.Join(iface.Addresses, ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func serve(addr string, enum oshw.Enumerator) {
	srv := &api.Server{
		Enumerator: enum,
		Logger:     log.StandardLogger(),
		Version:    buildVersion,
		BuildDate:  buildDate,
	}
	h := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Shutdown(ctx); err != nil {
			log.Errorf("http shutdown: %v", err)
		}
	}()

	log.Infof("serving adapters on %s", addr)
	if err := h.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server: %v", err)
	}
}
