package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"krakenrest/config"
	"krakenrest/kraken"
	"krakenrest/logger"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

const version = "1.0.0"

// session is what every command needs once flags and config are resolved.
type session struct {
	cfg    *config.Config
	client *kraken.Client
	log    *logger.Log
}

func newApp(out io.Writer) *cli.App {
	s := &session{log: logger.GetLogger()}
	return &cli.App{
		Name:                      "krakenrest",
		Usage:                     "call Kraken REST endpoints and print the result as JSON",
		Version:                   version,
		Writer:                    out,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to configuration file (missing file means defaults)",
			},
		},
		Before:   s.setup,
		Commands: s.commands(),
	}
}

func (s *session) setup(c *cli.Context) error {
	path := config.ResolvePath(c.String("config"))
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	if err := s.log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		return cli.Exit(fmt.Sprintf("failed to configure logger: %v", err), exitUsage)
	}

	env := config.AppEnvironment()
	if config.IsProductionLike(env) && cfg.Kraken.Scheme != "https" {
		return cli.Exit(fmt.Sprintf("kraken.scheme must be https in %s", env), exitUsage)
	}

	if cw := cfg.Metrics.CloudWatch; cw.Enabled {
		logger.InitCloudWatch(c.Context, logger.CloudWatchOptions{
			Region:          cw.Region,
			Namespace:       cw.Namespace,
			Dashboard:       cw.Dashboard,
			AccessKeyID:     cw.AccessKeyID,
			SecretAccessKey: cw.SecretAccessKey,
		})
	}

	s.log.WithEnv("APP_ENV", "AWS_REGION").WithComponent("cli").WithFields(logger.Fields{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
		"config":  path,
		"host":    cfg.Kraken.Host,
	}).Info("starting krakenrest")

	s.cfg = cfg
	s.client = kraken.NewClient(
		kraken.Credentials{Key: cfg.Kraken.APIKey, Secret: cfg.Kraken.APISecret},
		kraken.Options{
			Scheme:              cfg.Kraken.Scheme,
			Host:                cfg.Kraken.Host,
			Version:             cfg.Kraken.Version,
			UserAgent:           cfg.Kraken.UserAgent,
			Timeout:             cfg.Kraken.Timeout,
			DisableParamHeaders: !cfg.Kraken.SendParamHeaders(),
			Logger:              s.log,
		},
	)
	return nil
}

func (s *session) commands() []*cli.Command {
	eps := endpointCommands()
	out := make([]*cli.Command, 0, len(eps))
	for _, ep := range eps {
		ep := ep
		out = append(out, &cli.Command{
			Name:      ep.name,
			Usage:     ep.usage,
			ArgsUsage: ep.args,
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:    "opt",
					Aliases: []string{"o"},
					Usage:   "extra request parameter as key=value, repeatable",
				},
			},
			Action: func(c *cli.Context) error {
				return s.run(c, ep)
			},
		})
	}
	return out
}

func (s *session) run(c *cli.Context, ep endpointCommand) error {
	opts, err := parseOpts(c.StringSlice("opt"))
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if c.NArg() < ep.minArgs {
		return cli.Exit(fmt.Sprintf("usage: %s %s", ep.name, ep.args), exitUsage)
	}
	if ep.private && !s.cfg.HasCredentials() {
		return cli.Exit(ep.name+" needs KRAKEN_API_KEY and KRAKEN_API_SECRET", exitUsage)
	}

	done := make(chan kraken.Result[kraken.Response], 1)
	cb := func(r kraken.Result[kraken.Response]) { done <- r }
	if err := ep.call(c.Context, s.client, c.Args().Slice(), opts, cb); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	res := <-done
	if err := res.Err(); err != nil {
		s.log.WithComponent("cli").WithFields(logger.Fields{
			"command": ep.name,
		}).WithError(err).Error("request failed")
		return cli.Exit(err.Error(), exitFailure)
	}
	return printJSON(c.App.Writer, res.Value().Result)
}

// parseOpts turns repeated key=value flags into request parameters. Only the
// first '=' separates key from value.
func parseOpts(raw []string) (kraken.Params, error) {
	opts := kraken.Params{}
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --opt %q, want key=value", kv)
		}
		opts[key] = value
	}
	return opts, nil
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
