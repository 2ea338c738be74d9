package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/xrinput"
	"github.com/phanxgames/xrinput/tracker"
	"github.com/spf13/cobra"
)

const (
	emitDataVersion = 1
	emitPenRadius   = 0.05
)

// emitter plays a synthetic device: it sends pose reports to the tracker
// address and prints commands sent back to it.
type emitter struct {
	buttons     uint8
	screenWidth float64
	rate        float64
}

// frame returns the report with the given 1-based id. The pen circles the
// origin once per second.
func (e emitter) frame(id uint32) tracker.PoseSample {
	angle := 2 * math.Pi * float64(id-1) / e.rate
	return tracker.PoseSample{
		EyeVisible: true,
		Eye:        xrinput.Pose{Position: xrinput.Forward.Scale(-tracker.DefaultViewDistance), Rotation: xrinput.QuatIdentity},
		PenVisible: true,
		Pen: xrinput.Pose{
			Position: xrinput.Vec3{X: emitPenRadius * math.Cos(angle), Y: emitPenRadius * math.Sin(angle)},
			Rotation: xrinput.QuatIdentity,
		},
		PenButtons:   e.buttons,
		DataVersion:  emitDataVersion,
		FrameID:      id,
		ScreenWidth:  float32(e.screenWidth),
		ScreenHeight: float32(e.screenWidth * 9 / 16),
	}
}

func (e emitter) run(ctx context.Context, out io.Writer, addr string, count int) (int, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", addr, err)
	}

	replies := make(chan struct{})
	go func() {
		defer close(replies)
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			cmd, err := tracker.DecodeCommand(buf[:n])
			if err != nil {
				logger.Warnf("ignoring reply: %v", err)
				continue
			}
			fmt.Fprintf(out, "received %s %+v\n", cmd.TypeName(), cmd)
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / e.rate))
	defer ticker.Stop()
	sent := 0
	buf := make([]byte, 0, tracker.FrameSize)
loop:
	for count <= 0 || sent < count {
		buf = tracker.AppendFrame(buf[:0], e.frame(uint32(sent+1)))
		if _, err = conn.Write(buf); err != nil {
			err = fmt.Errorf("send frame %d: %w", sent+1, err)
			break
		}
		sent++
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
	}

	_ = conn.Close()
	<-replies
	return sent, err
}

func newEmitCmd(a *app) *cobra.Command {
	var (
		count       int
		rate        float64
		buttons     uint8
		screenWidth float64
	)
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Send synthetic pose reports to a UDP tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rate <= 0 {
				return fmt.Errorf("rate must be positive, got %v", rate)
			}
			if buttons > 7 {
				return fmt.Errorf("buttons must be a 3-bit mask, got %d", buttons)
			}
			cfg, err := a.trackerConfig()
			if err != nil {
				return err
			}
			if cfg.Mode != tracker.ModeUDP {
				return errors.New("emit only supports udp mode")
			}
			if screenWidth <= 0 {
				screenWidth = cfg.LocalScreenWidth()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			e := emitter{buttons: buttons, screenWidth: screenWidth, rate: rate}
			sent, err := e.run(ctx, cmd.OutOrStdout(), cfg.Addr(), count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %d frames to %s\n", sent, cfg.Addr())
			return err
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "frames to send (0 sends until interrupted)")
	cmd.Flags().Float64Var(&rate, "rate", 60, "frames per second")
	cmd.Flags().Uint8Var(&buttons, "buttons", 0, "pen button mask (bit 0 left, 1 right, 2 middle)")
	cmd.Flags().Float64Var(&screenWidth, "screen-width", 0, "reported screen width in meters (0 uses the configured screen)")
	return cmd
}
