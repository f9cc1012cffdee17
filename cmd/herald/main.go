// Command herald is the command-line front end of the notification
// library: list providers, inspect their argument contracts, dispatch
// notifications and query provider resources.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	herald "github.com/herald-notify/herald"
	"github.com/herald-notify/herald/internal/version"
)

const envDefaultProvider = "NOTIFIERS_DEFAULT_PROVIDER"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "herald:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "herald",
		Usage:   "send notifications through a uniform provider interface",
		Version: version.Version(),
		Commands: []*cli.Command{
			providersCommand(),
			metadataCommand(),
			notifyCommand(),
			resourceCommand(),
		},
	}
}

// setupFlags are shared by every command that reads configuration.
func setupFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML config file (default_provider, log_level)",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "path to a dotenv file loaded before dispatch",
			Value: ".env",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug logging",
		},
	}
}

// setup loads the dotenv file and the optional config file. A missing
// default .env is fine; an explicitly named file must exist.
func setup(c *cli.Command) (*viper.Viper, *zap.Logger, error) {
	envFile := c.String("env-file")
	if err := godotenv.Load(envFile); err != nil {
		if envFile != ".env" {
			return nil, nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("log_level", "info")
	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	logger := zap.NewNop()
	if c.Bool("verbose") || v.GetString("log_level") == "debug" {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}
	return v, logger, nil
}

// resolveProvider picks the provider name from the argument, the config
// file, or the environment, in that order.
func resolveProvider(c *cli.Command, v *viper.Viper) (string, error) {
	if name := c.Args().First(); name != "" {
		return name, nil
	}
	if name := v.GetString("default_provider"); name != "" {
		return name, nil
	}
	if name := os.Getenv(envDefaultProvider); name != "" {
		return name, nil
	}
	return "", errors.New("no provider given and no default configured")
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "list all registered providers",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, name := range herald.AllProviders() {
				fmt.Fprintln(c.Root().Writer, name)
			}
			return nil
		},
	}
}

func metadataCommand() *cli.Command {
	return &cli.Command{
		Name:      "metadata",
		Usage:     "show a provider's metadata and argument contract",
		ArgsUsage: "<provider>",
		Flags:     setupFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			v, _, err := setup(c)
			if err != nil {
				return err
			}
			name, err := resolveProvider(c, v)
			if err != nil {
				return err
			}
			p, err := herald.RequireNotifier(name)
			if err != nil {
				return err
			}

			args := p.Arguments()
			fields := make(map[string]any, len(args))
			for field, f := range args {
				fields[field] = f.Spec
			}
			return printJSON(c, map[string]any{
				"metadata":  p.Metadata(),
				"required":  p.Required(),
				"arguments": fields,
				"defaults":  p.Defaults(),
				"resources": p.Resources(),
			})
		},
	}
}

func notifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "notify",
		Usage:     "dispatch a notification",
		ArgsUsage: "<provider>",
		Flags: append(setupFlags(),
			&cli.StringSliceFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "argument as key=value, repeatable",
			},
			&cli.StringFlag{
				Name:  "json",
				Usage: "arguments as a JSON object, merged under --data",
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			v, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			name, err := resolveProvider(c, v)
			if err != nil {
				return err
			}
			args, err := collectArgs(c)
			if err != nil {
				return err
			}
			logger.Debug("dispatching",
				zap.String("provider", name),
				zap.Int("arguments", len(args)))

			resp, err := herald.Notify(ctx, name, args)
			if err != nil {
				return err
			}
			if err := printJSON(c, map[string]any{
				"status":   resp.Status,
				"provider": resp.Provider,
				"errors":   resp.Errors,
			}); err != nil {
				return err
			}
			return resp.RaiseOnErrors()
		},
	}
}

func resourceCommand() *cli.Command {
	return &cli.Command{
		Name:      "resource",
		Usage:     "query a provider resource",
		ArgsUsage: "<provider> <resource>",
		Flags: append(setupFlags(),
			&cli.StringSliceFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "argument as key=value, repeatable",
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			_, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			name := c.Args().Get(0)
			resourceName := c.Args().Get(1)
			if name == "" || resourceName == "" {
				return errors.New("usage: herald resource <provider> <resource>")
			}
			p, err := herald.RequireNotifier(name)
			if err != nil {
				return err
			}
			res, ok := p.Resource(resourceName)
			if !ok {
				return fmt.Errorf("provider %s has no resource %q, has: %s",
					name, resourceName, strings.Join(p.Resources(), ", "))
			}
			args, err := collectArgs(c)
			if err != nil {
				return err
			}
			out, err := res.Call(ctx, args)
			if err != nil {
				return err
			}
			return printJSON(c, out)
		},
	}
}

// collectArgs merges --json arguments with the repeatable --data pairs;
// --data wins on key conflicts.
func collectArgs(c *cli.Command) (map[string]any, error) {
	args := map[string]any{}
	if raw := c.String("json"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, fmt.Errorf("parsing --json: %w", err)
		}
	}
	for _, pair := range c.StringSlice("data") {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed --data %q, want key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}

func printJSON(c *cli.Command, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Root().Writer, string(encoded))
	return nil
}
