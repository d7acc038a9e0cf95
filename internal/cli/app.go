package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mfintake/intakecli/internal/client"
	"github.com/mfintake/intakecli/internal/config"
	"github.com/mfintake/intakecli/internal/logging"
	"github.com/mfintake/intakecli/internal/viewmodel"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires the view-model to a terminal REPL. It is the "page" hosting the
// intake view-model: each REPL command corresponds to a UI event.
type App struct {
	config *config.Config
	api    client.Client
	vm     *viewmodel.ViewModel
	log    logging.Logger
	reader *bufio.Reader

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewDefault()
	}

	api, err := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}

	vm := viewmodel.New(api, log, c.SuccessBannerDelay)

	return &App{
		config: c,
		api:    api,
		vm:     vm,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	defer a.vm.Close()

	// Best-effort refresh on startup; the default profile stays if it fails.
	a.vm.LoadProfile(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes the backend's health endpoint on the given
// interval and flips the online/offline indicator shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
