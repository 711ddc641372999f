// Command battery-alert watches the laptop battery and pops up a warning
// window when it runs low, offering to hibernate once it is critical.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/battery-alert/internal/agent"
	"github.com/cptspacemanspiff/battery-alert/internal/collector"
	"github.com/cptspacemanspiff/battery-alert/internal/config"
	"github.com/cptspacemanspiff/battery-alert/internal/popup"
	"github.com/cptspacemanspiff/battery-alert/internal/power"
	"github.com/cptspacemanspiff/battery-alert/internal/render"
)

func init() {
	// GLFW must only be called from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorPrefix := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintln(os.Stderr, errorPrefix("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "battery-alert <font>",
		Short: "Warn about a low battery with a popup window",
		Long: `battery-alert polls the battery once a second. It opens a popup when the
charge drops to 20% and again at 10%, where the popup also offers to hibernate.
Plugging in the charger re-arms both alerts.

The argument is a font file path, or a font name looked up as <name>.ttf in
~/.local/share/fonts and /usr/share/fonts.`,
		Args:          fontArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, args[0], cmd.ErrOrStderr())
		},
	}
}

func fontArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &config.ConfigError{Msg: fmt.Sprintf("expected a font name or path, got %d arguments", len(args))}
	}
	return nil
}

func run(ctx context.Context, fontName string, logOut io.Writer) error {
	cfg, err := config.Embedded()
	if err != nil {
		return err
	}

	handler := newTopicHandler(
		slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}),
		cfg.Logging.Topics,
	)
	logger := slog.New(handler)

	fontPath, err := config.ResolveFont(fontName)
	if err != nil {
		return err
	}
	layout, err := popup.NewLayout(cfg)
	if err != nil {
		return err
	}

	var resumed <-chan struct{}
	if mon, err := power.NewResumeMonitor(logger.With("topic", "power")); err != nil {
		logger.Warn("resume monitor unavailable", "err", err)
	} else {
		defer mon.Close()
		resumed = mon.Resumed()
	}

	a, err := agent.New(agent.Options{
		Reader:     collector.Sysfs{},
		Open:       render.Open,
		Hibernator: power.New(logger.With("topic", "power")),
		Layout:     layout,
		FontPath:   fontPath,
		Interval:   cfg.Poll.Interval(),
		Logger:     logger,
		Resumed:    resumed,
	})
	if err != nil {
		return err
	}

	logger.Info("battery-alert started", "font", fontPath, "interval", cfg.Poll.Interval())
	return a.Run(ctx)
}
