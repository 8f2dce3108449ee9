package situation

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/picogrid/situation-monitor/pkg/logger"
	"github.com/picogrid/situation-monitor/pkg/monitor"
	"github.com/picogrid/situation-monitor/pkg/reporting"
	"github.com/picogrid/situation-monitor/pkg/simulation"
)

//go:embed simulation.yaml
var descriptor []byte

// statusInterval paces the one-line progress log when output is not a terminal
const statusInterval = 5 * time.Second

func init() {
	cfg, err := simulation.ParseConfig(descriptor)
	if err != nil {
		panic(fmt.Sprintf("situation monitor descriptor: %v", err))
	}
	if err := simulation.DefaultRegistry.Register(cfg, NewSituationMonitor); err != nil {
		panic(err)
	}
}

// SituationMonitor drives the monitor engine and renders it to the terminal
type SituationMonitor struct {
	config   *Config
	in       *os.File
	out      io.Writer
	journal  *reporting.Journal
	mu       sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once

	// interactive is resolved at Run time unless set by tests
	interactive func() bool
}

// NewSituationMonitor creates a new instance of the situation monitor simulation
func NewSituationMonitor() simulation.Simulation {
	return newSituationMonitor(os.Stdin, os.Stdout)
}

func newSituationMonitor(in *os.File, out io.Writer) *SituationMonitor {
	s := &SituationMonitor{
		in:       in,
		out:      out,
		stopChan: make(chan struct{}),
	}
	s.interactive = func() bool {
		f, ok := s.out.(*os.File)
		return ok && IsTerminal(s.in) && IsTerminal(f)
	}
	return s
}

// Name returns the simulation name
func (s *SituationMonitor) Name() string {
	return "Situation Monitor"
}

// Description returns the simulation description
func (s *SituationMonitor) Description() string {
	return "Simulated real-time situation monitoring dashboard with missile launches, intercepted comms, briefings and visual intel"
}

// Configure sets up the simulation with provided parameters
func (s *SituationMonitor) Configure(params map[string]interface{}) error {
	config, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = config
	return nil
}

// Journal returns the event journal of the last run
func (s *SituationMonitor) Journal() *reporting.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal
}

// Run executes the simulation
func (s *SituationMonitor) Run(ctx context.Context) error {
	if s.config == nil {
		return fmt.Errorf("simulation not configured")
	}

	catalog := monitor.DefaultCatalog()
	if s.config.CatalogPath != "" {
		loaded, err := monitor.LoadCatalog(s.config.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		catalog = loaded
	}

	var opts []monitor.Option
	if s.config.Seed != 0 {
		opts = append(opts, monitor.WithRand(monitor.NewRand(s.config.Seed)))
	}

	engine, err := monitor.NewEngine(s.config.Engine, catalog, opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	sessionID := uuid.NewString()
	journal := reporting.NewJournal(sessionID, logger.Default())
	s.mu.Lock()
	s.journal = journal
	s.mu.Unlock()
	engine.Subscribe(journal.Observe)

	log := logger.WithPrefix("monitor").WithField("session", sessionID[:8])
	log.Infof("Starting %s simulation", s.Name())
	logger.Default().Debugf("Engine configuration:\n%s", s.config.Engine.String())

	var (
		dashboard *Dashboard
		keyboard  *Keyboard
		keys      <-chan KeyAction
	)
	interactive := s.interactive()
	if interactive {
		keyboard, err = OpenKeyboard(s.in)
		if err != nil {
			log.Warnf("Keyboard control unavailable: %v", err)
		} else {
			keys = keyboard.Actions()
		}
		newline := "\n"
		if keyboard != nil {
			newline = "\r\n"
		}
		dashboard = s.newDashboard(catalog, newline)
	}

	if err := engine.Start(ctx); err != nil {
		if keyboard != nil {
			_ = keyboard.Close()
		}
		return fmt.Errorf("failed to start engine: %w", err)
	}

	runErr := s.loop(ctx, engine, dashboard, keys, log)

	engine.Stop()
	if keyboard != nil {
		if err := keyboard.Close(); err != nil {
			log.Warnf("Failed to restore terminal: %v", err)
		}
	}

	journal.PrintSummary(s.out)
	return runErr
}

func (s *SituationMonitor) newDashboard(catalog *monitor.Catalog, newline string) *Dashboard {
	f, _ := s.out.(*os.File)
	width, height := 100, 40
	if f != nil {
		width, height = TerminalSize(f, width, height)
	}
	mapHeight := clamp(height/3, 10, 20)
	return NewDashboard(NewTheater(catalog, width-2, mapHeight), width-1, newline)
}

func (s *SituationMonitor) loop(ctx context.Context, engine *monitor.Engine, dashboard *Dashboard, keys <-chan KeyAction, log logger.Logger) error {
	view := s.config.ViewMode

	refresh := s.config.RefreshInterval
	if dashboard == nil {
		refresh = statusInterval
	}
	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	var timeout <-chan time.Time
	if s.config.Duration > 0 {
		timer := time.NewTimer(s.config.Duration)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			log.Info("Simulation stopped by user")
			return nil
		case <-timeout:
			log.Infof("Simulation completed after %s", s.config.Duration)
			return nil
		case action, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch action.Command {
			case CommandQuit:
				return nil
			case CommandToggle:
				if err := engine.Toggle(ctx); err != nil {
					log.Errorf("Failed to toggle simulation: %v", err)
				}
			case CommandView:
				view = action.View
			}
			if dashboard != nil {
				_ = dashboard.Render(s.out, engine.Snapshot(), view, time.Now())
			}
		case <-ticker.C:
			snap := engine.Snapshot()
			if dashboard != nil {
				if err := dashboard.Render(s.out, snap, view, snap.TakenAt); err != nil {
					return fmt.Errorf("failed to render dashboard: %w", err)
				}
				continue
			}
			log.Infof("%s | launches: %d | active threats: %d | intel packets: %d",
				snap.Status, len(snap.Launches), snap.ActiveThreats, snap.IntelPackets)
		}
	}
}

// Stop gracefully shuts down the simulation
func (s *SituationMonitor) Stop() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	return nil
}
