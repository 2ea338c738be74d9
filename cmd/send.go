package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/phanxgames/xrinput/tracker"
	"github.com/spf13/cobra"
)

// sendOnce starts a client, waits for the device to be reachable and sends
// cmd. A UDP client only learns the device address from its first report.
func sendOnce(ctx context.Context, cfg tracker.Config, cmd tracker.Command, wait time.Duration) error {
	c, err := tracker.NewClient(cfg)
	if err != nil {
		return err
	}

	seen := make(chan struct{})
	var once sync.Once
	sub := c.Subscribe(func(tracker.PoseSample, float64) {
		once.Do(func() { close(seen) })
	})
	defer sub.Unsubscribe()

	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Stop()

	if cfg.Mode == tracker.ModeUDP {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-seen:
		case <-timer.C:
			return fmt.Errorf("no device report on %s within %s", cfg.Addr(), wait)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.SendCommand(cmd)
}

func newVibrateCmd(a *app) *cobra.Command {
	var (
		ms       int
		strength int
		wait     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "vibrate",
		Short: "Send a pen vibration command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strength < 0 || strength > 100 {
				return fmt.Errorf("strength must be 0-100, got %d", strength)
			}
			cfg, err := a.trackerConfig()
			if err != nil {
				return err
			}
			shake := tracker.PenShakeCommand{Time: ms, Strength: strength}
			if err := sendOnce(cmd.Context(), cfg, shake, wait); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %s time=%d strength=%d\n", shake.TypeName(), ms, strength)
			return err
		},
	}
	cmd.Flags().IntVar(&ms, "time", 200, "duration in milliseconds (negative runs until stopped)")
	cmd.Flags().IntVar(&strength, "strength", 50, "strength 0-100 (0 stops)")
	cmd.Flags().DurationVar(&wait, "wait", 2*time.Second, "how long to wait for a udp device report")
	return cmd
}

func newXRModeCmd(a *app) *cobra.Command {
	var (
		tracking string
		display  string
		wait     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "xrmode",
		Short: "Switch tracking and the display mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := parseTriState(tracking)
			if err != nil {
				return err
			}
			dm, err := parseDisplayMode(display)
			if err != nil {
				return err
			}
			cfg, err := a.trackerConfig()
			if err != nil {
				return err
			}
			mode := tracker.XRModeCommand{Tracking: tr, DisplayMode: dm}
			if err := sendOnce(cmd.Context(), cfg, mode, wait); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %s tracking=%s display=%s\n", mode.TypeName(), tracking, display)
			return err
		},
	}
	cmd.Flags().StringVar(&tracking, "tracking", "on", "tracking: on, off or unset")
	cmd.Flags().StringVar(&display, "display", "stereo", "display mode: mono, stereo or unset")
	cmd.Flags().DurationVar(&wait, "wait", 2*time.Second, "how long to wait for a udp device report")
	return cmd
}

func parseTriState(s string) (tracker.TriState, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return tracker.TriOn, nil
	case "off", "false", "0":
		return tracker.TriOff, nil
	case "unset", "":
		return tracker.TriUnset, nil
	}
	return tracker.TriUnset, fmt.Errorf("invalid tracking value %q", s)
}

func parseDisplayMode(s string) (tracker.DisplayMode, error) {
	switch strings.ToLower(s) {
	case "mono":
		return tracker.DisplayMono, nil
	case "stereo":
		return tracker.DisplayStereo, nil
	case "unset", "":
		return tracker.DisplayUnset, nil
	}
	return tracker.DisplayUnset, fmt.Errorf("invalid display mode %q", s)
}
