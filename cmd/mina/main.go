package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/user/mina-service/internal/app"
	"github.com/user/mina-service/internal/delivery/http/request"
	"github.com/user/mina-service/pkg/config"
	"github.com/user/mina-service/pkg/logger"
)

// env is populated by the Before hook.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

var current env

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mina",
		Usage: "Find startup signals in web search results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"MINA_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: setup,
		After: func(*cli.Context) error {
			if current.log != nil {
				_ = current.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Search the web for companies and print them as JSON",
				Action: searchCommand,
				Flags: append(requestFlags(),
					&cli.StringFlag{Name: "topic", Usage: "Topic for trend searches"},
					&cli.StringFlag{Name: "role", Usage: "Role for hiring searches"},
				),
			},
			{
				Name:   "extract",
				Usage:  "Extract companies from a JSON file of search hits without calling any upstream",
				Action: extractCommand,
				Flags: append(requestFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON array of {title, description, url, date}; - reads stdin",
						Required: true,
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port, overrides server.port"},
				},
			},
		},
	}
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "trend, startup, funding or hiring", Value: "hiring"},
		&cli.StringFlag{Name: "location", Usage: "Location slug, e.g. san-francisco"},
		&cli.StringFlag{Name: "stage", Usage: "Funding stage slug, e.g. series-b"},
		&cli.IntFlag{Name: "offset", Usage: "Number of records to skip"},
		&cli.IntFlag{Name: "page-size", Usage: "Records per page, defaults to search.page_size (max 50)"},
	}
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	// Command output is JSON on stdout.
	if c.Args().First() != "serve" && cfg.Log.Output != "file" {
		cfg.Log.Output = "stderr"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	current = env{cfg: cfg, log: log}
	return nil
}

func searchCommand(c *cli.Context) error {
	a, err := app.Build(current.cfg, current.log)
	if err != nil {
		return err
	}

	req := searchRequest(c)
	req.Topic = c.String("topic")
	req.Role = c.String("role")

	result, err := a.Searcher.Search(c.Context, req.Params())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, result)
}

func extractCommand(c *cli.Context) error {
	hits, err := readHits(c.String("file"), c.App.Reader)
	if err != nil {
		return err
	}

	a, err := app.Build(current.cfg, current.log)
	if err != nil {
		return err
	}

	req := request.ExtractRequest{SearchRequest: searchRequest(c), Hits: hits}

	result, err := a.Searcher.Extract(req.Params(), req.SearchHits())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, result)
}

func serveCommand(c *cli.Context) error {
	a, err := app.Build(current.cfg, current.log)
	if err != nil {
		return err
	}

	server := current.cfg.Server
	if p := c.String("port"); p != "" {
		server.Port = p
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return app.Serve(ctx, a.NewServer(server, current.log), current.log)
}

func searchRequest(c *cli.Context) request.SearchRequest {
	return request.SearchRequest{
		Mode:         c.String("mode"),
		Location:     c.String("location"),
		FundingStage: c.String("stage"),
		Offset:       c.Int("offset"),
		PageSize:     c.Int("page-size"),
	}
}

func readHits(path string, stdin io.Reader) ([]request.Hit, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open hits file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var hits []request.Hit
	if err := json.NewDecoder(r).Decode(&hits); err != nil {
		return nil, fmt.Errorf("failed to decode hits: %w", err)
	}
	return hits, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
