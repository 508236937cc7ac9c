package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/castelle/tipcast/cmd"
	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/logger"
	"github.com/castelle/tipcast/updater"

	"github.com/fatih/color"
)

const version = "v0.3.1"

func main() {
	flags, args := cmd.ParseFlags()

	if flags.Version {
		fmt.Printf("tipcast version %s\n", version)
		return
	}

	var subcommand string
	if len(args) > 0 {
		subcommand = args[0]
	}

	if subcommand == "update" {
		if err := updater.CheckForUpdate(version); err != nil {
			fmt.Printf("Error updating: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := config.EnsureConfigExists(config.GetConfigPath()); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		fmt.Printf("Config problem: %v\n", err)
		fmt.Printf("Edit %s and try again.\n", config.GetConfigPath())
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg); err != nil {
		log.Fatal(err)
	}

	logger.Logger.Printf("Starting tipcast %s", version)

	switch subcommand {
	case "service":
		cmd.RunService()
		return
	case "config":
		if err := config.OpenConfigInEditor(config.GetConfigPath()); err != nil {
			fmt.Printf("Error opening config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app, err := cmd.NewApp(cfg)
	if err != nil {
		logger.Logger.Fatal(err)
	}
	defer app.Close()

	switch subcommand {
	case "", "run":
		runDaemon(app)
	case "post":
		runPost(app, flags, args[1:])
	case "stats":
		printStats(app)
	case "delete":
		runDelete(app, args[1:])
	default:
		fmt.Printf("Unknown subcommand %q\n", subcommand)
		fmt.Println("Usage: tipcast [run|post|stats|delete|service|config|update]")
		os.Exit(1)
	}
}

func runDaemon(app *cmd.App) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		color.Yellow("Shutting down, letting in-flight posts finish...")
		cancel()
	}()

	color.Green("Scheduler running. Ctrl-C to stop.")
	if err := app.Scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Logger.Printf("Scheduler stopped: %v", err)
		os.Exit(1)
	}
}

func runPost(app *cmd.App, flags cmd.Flags, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: tipcast post [tip|mcq|answer|custom]")
		os.Exit(1)
	}

	ctx := context.Background()
	var err error

	switch args[0] {
	case "tip":
		err = app.Scheduler.PostTip(ctx)
	case "mcq":
		err = app.Scheduler.PostMCQ(ctx)
	case "answer":
		err = app.Scheduler.PostMCQAnswer(ctx)
	case "custom":
		if flags.Message == "" {
			fmt.Println("post custom needs --message (and optionally --image, --category)")
			os.Exit(1)
		}
		category := flags.Category
		if category == "" {
			category = content.CategoryJavaScript
		}
		err = app.Scheduler.PostCustom(ctx, category, flags.Message, flags.Image)
	default:
		fmt.Printf("Unknown post type %q\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		color.Red("Post failed: %v", err)
		os.Exit(1)
	}
	color.Green("Posted.")
}

func printStats(app *cmd.App) {
	stats, err := app.Scheduler.Stats()
	if err != nil {
		color.Red("Error collecting stats: %v", err)
		os.Exit(1)
	}

	fmt.Printf("JavaScript tips: %d/%d posted this cycle\n", stats.JSTipsPosted, stats.JSTipsTotal)
	fmt.Printf("React tips:      %d/%d posted this cycle\n", stats.ReactTipsPosted, stats.ReactTipsTotal)
	fmt.Printf("MCQs:            %d total, %d unposted\n", stats.MCQsTotal, stats.MCQsUnposted)
	fmt.Printf("Ledger:          %d tips published, %d failed; %d MCQs published, %d failed, %d pending\n",
		stats.Ledger.TipsPublished, stats.Ledger.TipsFailed,
		stats.Ledger.MCQsPublished, stats.Ledger.MCQsFailed, stats.Ledger.MCQsPending)
}

func runDelete(app *cmd.App, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: tipcast delete [tip <id>|mcq <id>]")
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "tip":
		err = app.Ledger.DeleteTipPost(args[1])
	case "mcq":
		var id int
		id, err = strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Invalid mcq post id %q\n", args[1])
			os.Exit(1)
		}
		err = app.Ledger.DeleteMCQPost(id)
	default:
		fmt.Printf("Unknown delete type %q\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		color.Red("Delete failed: %v", err)
		os.Exit(1)
	}
	color.Green("Deleted.")
}
