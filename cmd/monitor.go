package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"
	"github.com/phanxgames/xrinput/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
	logger = golog.Child("[xrbridge]")
)

type penStatus struct {
	Status   string     `json:"status"`
	Visible  bool       `json:"visible"`
	Buttons  uint8      `json:"buttons"`
	Position [3]float64 `json:"position"`
}

type headStatus struct {
	Status   string     `json:"status"`
	Position [3]float64 `json:"position"`
}

type monitorStatus struct {
	Client     string     `json:"client"`
	Mode       string     `json:"mode"`
	DataFactor float64    `json:"dataFactor"`
	FrameID    uint32     `json:"frameId"`
	Pen        penStatus  `json:"pen"`
	Head       headStatus `json:"head"`
}

// monitor owns a client and its trackers and publishes a status snapshot
// once per tick.
type monitor struct {
	client *tracker.Client
	pen    *tracker.PenTracker
	head   *tracker.HeadTracker
	reg    *prometheus.Registry

	mu   sync.Mutex
	last monitorStatus
}

func newMonitor(cfg tracker.Config) (*monitor, error) {
	reg := prometheus.NewRegistry()
	client, err := tracker.NewClient(cfg, tracker.WithMetrics(tracker.NewMetrics(reg)))
	if err != nil {
		return nil, err
	}
	m := &monitor{
		client: client,
		pen:    tracker.NewPenTracker(client),
		head:   tracker.NewHeadTracker(client),
		reg:    reg,
	}
	m.pen.OnStatusChanged = func(s tracker.TrackingStatus) { logger.Infof("pen %s", s) }
	m.head.OnStatusChanged = func(s tracker.TrackingStatus) { logger.Infof("head %s", s) }
	m.tick(0)
	return m, nil
}

func (m *monitor) tick(dt time.Duration) monitorStatus {
	m.pen.Update()
	m.head.Update(dt.Seconds())

	st := monitorStatus{
		Client:     m.client.State().String(),
		Mode:       string(m.client.Config().Mode),
		DataFactor: m.client.DataFactor(),
	}
	if s, ok := m.client.Latest(); ok {
		st.FrameID = s.FrameID
	}
	pp := m.pen.Pose().Position
	st.Pen = penStatus{
		Status:   m.pen.Status().String(),
		Visible:  m.pen.Visible(),
		Buttons:  m.pen.Buttons(),
		Position: [3]float64{pp.X, pp.Y, pp.Z},
	}
	hp := m.head.Rig().Head
	st.Head = headStatus{
		Status:   m.head.Status().String(),
		Position: [3]float64{hp.X, hp.Y, hp.Z},
	}

	m.mu.Lock()
	m.last = st
	m.mu.Unlock()
	return st
}

func (m *monitor) status() monitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *monitor) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		st := m.status()
		code := http.StatusOK
		if st.Client != tracker.Active.String() {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"client": st.Client})
	})
	r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, m.status())
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("write response: %v", err)
	}
}

func (m *monitor) run(ctx context.Context, out io.Writer, listen string, interval time.Duration) error {
	if err := m.client.Start(ctx); err != nil {
		return err
	}
	defer m.client.Stop()

	if listen != "" {
		srv := &http.Server{Addr: listen, Handler: m.router(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("http server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Infof("serving /metrics, /state and /healthz on %s", listen)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			st := m.tick(now.Sub(last))
			last = now
			if _, err := fmt.Fprintln(out, renderStatus(st)); err != nil {
				return err
			}
		}
	}
}

func newMonitorCmd(a *app) *cobra.Command {
	var (
		listen   string
		interval time.Duration
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Receive pose reports and print tracker status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}
			cfg, err := a.trackerConfig()
			if err != nil {
				return err
			}
			m, err := newMonitor(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return m.run(ctx, cmd.OutOrStdout(), listen, interval)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":9100", "HTTP address for /metrics, /state and /healthz (empty disables)")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "status print interval")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	return cmd
}
