// turnctl runs queue maintenance from the command line: manual rollover,
// purge, catch-up of missed days and operator statistics.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"turn_queue/internal/app"
	"turn_queue/internal/auth"
	"turn_queue/internal/config"
	"turn_queue/internal/notify"
	"turn_queue/internal/rollover"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const usage = `usage: turnctl <command> [flags]

commands:
  rollover   archive (or purge) a service day
  purge      delete every live ticket without archiving
  catch-up   archive days a stopped scheduler missed
  stats      print operator statistics of a day
  last       print the most recent rollover
  token      mint an access token for local testing
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(out, usage)
		return nil
	}
	if os.Getenv("ENV_CHEK") == "" {
		_ = godotenv.Load()
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	if cmd == "token" {
		return runToken(cfg, rest, out)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	a, err := app.NewApp(ctx, cfg, logger, notify.LogPublisher{Logger: logger})
	if err != nil {
		return err
	}
	defer a.Close()

	switch cmd {
	case "rollover":
		flags := pflag.NewFlagSet("rollover", pflag.ContinueOnError)
		mode := flags.String("mode", string(rollover.ModeArchive), "ARCHIVE or PURGE")
		day := flags.String("day", "", "service day YYYY-MM-DD (default: today)")
		confirm := flags.String("confirm", "", "confirmation phrase")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		m, err := rollover.ParseMode(*mode)
		if err != nil {
			return err
		}
		res, err := a.Rollover.RunManual(ctx, *confirm, m, *day)
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "purge":
		flags := pflag.NewFlagSet("purge", pflag.ContinueOnError)
		confirm := flags.String("confirm", "", "confirmation phrase")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		res, err := a.Rollover.RunManual(ctx, *confirm, rollover.ModePurge, "")
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "catch-up":
		res, err := a.Rollover.CatchUp(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "stats":
		flags := pflag.NewFlagSet("stats", pflag.ContinueOnError)
		day := flags.String("day", a.Rollover.Today(), "service day YYYY-MM-DD")
		if err := flags.Parse(rest); err != nil {
			return err
		}
		stats, err := a.Rollover.OperatorStats(ctx, *day)
		if err != nil {
			return err
		}
		return printJSON(out, stats)

	case "last":
		state, err := a.Rollover.LastRun(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, state)
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func runToken(cfg *config.Config, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("token", pflag.ContinueOnError)
	user := flags.String("user", "", "user id (required)")
	role := flags.String("role", auth.RoleOperator, "Operator or Admin")
	ttl := flags.Duration("ttl", time.Hour, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("--user is required")
	}
	if cfg.JWTAccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is not set")
	}
	token, err := auth.GenerateToken(*user, *role, *ttl, []byte(cfg.JWTAccessSecret))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
