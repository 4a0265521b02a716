package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"ewintr.nl/tubesum/client"
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slog"
)

func main() {
	server := flag.String("server", getParam("TUBESUM_SERVER", "http://localhost:3000"), "address of the tubesum service")
	copyFlag := flag.Bool("copy", false, "copy the summary to the clipboard")
	out := flag.String("out", "", "write youtube-summary.md to this directory")
	raw := flag.Bool("raw", false, "print the markdown instead of rendering it")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <youtube-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	o := client.NewOrchestrator(client.NewHTTPAPI(*server, http.DefaultClient), logger)
	state := o.Run(ctx, flag.Arg(0))
	if state.Phase != client.PhaseSuccess {
		fmt.Fprintf(os.Stderr, "Oops! Something went wrong: %s\n", state.Err)
		os.Exit(1)
	}

	if err := show(state, *raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *copyFlag {
		if err := o.Copy(client.SystemClipboard{}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Copied!")
	}
	if *out != "" {
		path, err := o.ExportFile(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "written to %s\n", path)
	}
}

func show(state client.State, raw bool) error {
	if raw {
		fmt.Println(state.Summary)
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}
	rendered, err := r.Render(state.Summary)
	if err != nil {
		return fmt.Errorf("could not render summary: %w", err)
	}
	if state.Transcript.Title != "" {
		fmt.Printf("\n  %s\n", state.Transcript.Title)
	}
	fmt.Print(rendered)

	return nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
