package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"lazymc"
	"lazymc/explicit"
	"lazymc/service"
	"lazymc/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

var (
	help = flag.Bool(
		"help",
		false,
		"Show usage help",
	)
	modelPath = flag.String(
		"model",
		"",
		"Path to the YAML model to check",
	)
	search = flag.String(
		"search",
		"bfs",
		"Search strategy. One of bfs, dfs and random",
	)
	seed = flag.Int64(
		"seed",
		time.Now().UnixNano(),
		"Seed of the random search strategy",
	)
	cells = flag.Int(
		"cells",
		0,
		"Number of cells the values are split into. 0 tracks every value exactly",
	)
	backward = flag.Bool(
		"backward",
		false,
		"Use backward refinement",
	)
	lazyTargets = flag.Bool(
		"lazy-targets",
		false,
		"Report targets when they are removed from the waitlist",
	)
	maxNodes = flag.Int(
		"max-nodes",
		0,
		"Stop when the ARG grows beyond this many nodes. 0 means no limit",
	)
	timeout = flag.Duration(
		"timeout",
		0,
		"Stop the check after this duration. 0 means no limit",
	)
	export = flag.String(
		"export",
		"",
		"Write the final ARG in Newick format to this file",
	)
	verbose = flag.Bool(
		"v",
		false,
		"Log refinements",
	)
	metricsAddr = flag.String(
		"metrics",
		"",
		"Serve Prometheus metrics on this address",
	)
	serveAddr = flag.String(
		"serve",
		"",
		"Serve the gRPC reachability service on this address instead of checking a model",
	)
)

// Usage prints usage info
func Usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = Usage
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	var metrics *stats.Prometheus
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = stats.NewPrometheus(reg)
		go serveMetrics(*metricsAddr, reg)
	}

	opts, err := checkOptions()
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *serveAddr != "" {
		serve(*serveAddr, metrics, opts)
		return
	}

	if *modelPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	sys, err := explicit.Load(*modelPath)
	if err != nil {
		log.Fatalf("Unable to load the model: %v", err)
	}

	if metrics != nil {
		opts = append(opts, lazymc.WithRecorder(metrics.Fork()))
	}
	if *export != "" {
		f, err := os.Create(*export)
		if err != nil {
			log.Fatalf("Unable to create the export file: %v", err)
		}
		defer f.Close()
		opts = append(opts, lazymc.Export(f))
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	resp, err := lazymc.Check(ctx, sys, opts...)
	if err != nil {
		log.Fatalf("Check of %v did not complete: %v", sys.Name, err)
	}
	ok, desc := resp.Response()
	fmt.Println(desc)
	fmt.Println(resp.Statistics())
	if !ok {
		os.Exit(1)
	}
}

func checkOptions() ([]lazymc.CheckOption, error) {
	opts := []lazymc.CheckOption{}
	switch *search {
	case "bfs":
		opts = append(opts, lazymc.BFS())
	case "dfs":
		opts = append(opts, lazymc.DFS())
	case "random":
		opts = append(opts, lazymc.RandomSearch(*seed))
	default:
		return nil, fmt.Errorf("unknown search strategy %q", *search)
	}
	if *cells > 0 {
		opts = append(opts, lazymc.WithPrecision(*cells))
	}
	if *backward {
		opts = append(opts, lazymc.Backward())
	}
	if *lazyTargets {
		opts = append(opts, lazymc.LazyTargetDetection())
	}
	if *maxNodes > 0 {
		opts = append(opts, lazymc.MaxNodes(*maxNodes))
	}
	if *verbose {
		opts = append(opts, lazymc.WithLogger(log.Default()))
	}
	return opts, nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Printf("Serving metrics on %v", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Metrics server stopped: %v", err)
	}
}

func serve(addr string, metrics *stats.Prometheus, opts []lazymc.CheckOption) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Unable to listen on %v: %v", addr, err)
	}
	srv := grpc.NewServer(grpc.UnaryInterceptor(service.LoggingInterceptor(log.Default())))
	service.Register(srv, service.NewServer(metrics, log.Default(), opts...))
	log.Printf("Serving the reachability service on %v", addr)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("gRPC server stopped: %v", err)
	}
}
