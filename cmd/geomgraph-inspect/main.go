// Command geomgraph-inspect fetches diagnostic data from a running
// geomgraph host process and prints it either as pretty text or JSON. It
// also supports periodic watch mode and pprof snapshot download.
//
// The target Go service is expected to expose:
//   - GET /debug/snapshot         – the §6 World JSON document.
//   - GET /debug/pprof/{heap,goroutine} – standard pprof handlers (net/http/pprof).
//
// The snapshot object is decoded into a generic map[string]any to avoid
// version skew between this CLI and the library it inspects.
//
// © 2025 arena-cache authors. MIT License.
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
	"syscall"
	"time"
)

var version = "dev"

type options struct {
	target           string
	json             bool
	watch            bool
	interval         time.Duration
	heapProfile      string
	goroutineProfile string
	version          bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:8080", "base URL of the geomgraph host process")
	flag.BoolVar(&opts.json, "json", false, "print the raw JSON document instead of a text summary")
	flag.BoolVar(&opts.watch, "watch", false, "poll the snapshot endpoint repeatedly")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval in watch mode")
	flag.StringVar(&opts.heapProfile, "heap-profile", "", "download the heap profile to this path and exit")
	flag.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download the goroutine profile to this path and exit")
	flag.BoolVar(&opts.version, "version", false, "print the build version and exit")
	flag.Parse()
	return opts
}

// main resolves opts into a single action and runs it to completion. The
// action set is mutually exclusive (version print, one of the two profile
// downloads, a repeating watch, or a single dump) so there's exactly one
// path from flags to exit code, rather than a chain of early returns.
func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}

	ctx, cancel := withInterrupt(context.Background())
	defer cancel()

	if err := dispatch(ctx, opts); err != nil {
		fatal(err)
	}
}

// withInterrupt derives a context that cancels on SIGINT/SIGTERM.
func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()
	return ctx, cancel
}

func dispatch(ctx context.Context, opts *options) error {
	switch {
	case opts.heapProfile != "":
		return downloadProfile(ctx, opts.target, "heap", opts.heapProfile)
	case opts.goroutineProfile != "":
		return downloadProfile(ctx, opts.target, "goroutine", opts.goroutineProfile)
	case opts.watch:
		return watchSnapshot(ctx, opts)
	default:
		return dumpOnce(ctx, opts)
	}
}

// watchSnapshot dumps the snapshot once immediately, then again on every
// tick until ctx is cancelled. A failed dump is logged and the loop
// continues rather than aborting the whole watch.
func watchSnapshot(ctx context.Context, opts *options) error {
	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()
	for {
		if err := dumpOnce(ctx, opts); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func dumpOnce(ctx context.Context, opts *options) error {
	body, err := httpGET(ctx, opts.target+"/debug/snapshot")
	if err != nil {
		return err
	}
	defer body.Close()

	var snap map[string]any
	if err := json.NewDecoder(body).Decode(&snap); err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

// httpGET issues a GET against url and returns the response body on a 200,
// closing it and returning an error otherwise. Shared by dumpOnce and
// downloadProfile so the request/status-check boilerplate lives in one
// place instead of being duplicated per endpoint.
func httpGET(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	return res.Body, nil
}

// prettyPrint assumes the §6 World document shape: top-level "points",
// "shapes" and "groups" objects keyed by slot index.
func prettyPrint(data map[string]any) error {
	fmt.Printf("Points: %d\n", countEntries(data["points"]))
	fmt.Printf("Shapes: %d\n", countEntries(data["shapes"]))
	fmt.Printf("Groups: %d\n", countEntries(data["groups"]))
	if groups, ok := data["groups"].(map[string]any); ok {
		for _, v := range groups {
			g, ok := v.(map[string]any)
			if !ok {
				continue
			}
			pts, _ := g["points"].([]any)
			fmt.Printf("  %-20s %d points\n", g["name"], len(pts))
		}
	}
	return nil
}

func countEntries(v any) int {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	return len(m)
}

func downloadProfile(ctx context.Context, base, name, path string) error {
	body, err := httpGET(ctx, fmt.Sprintf("%s/debug/pprof/%s", base, name))
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return err
	}
	fmt.Printf("%s profile saved to %s\n", name, path)
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "geomgraph-inspect:", err)
	os.Exit(1)
}
