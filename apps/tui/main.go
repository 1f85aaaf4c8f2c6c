package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
	gatewaysvc "github.com/iwneis/neishelper/services/gateway"
	logsvc "github.com/iwneis/neishelper/services/logger"
)

const deviceIDFile = "device-id"

var nowFunc = time.Now // mockable

func main() {
	conf := core.NewConfig()

	var userID, gatewayURL string
	root := &cobra.Command{
		Use:          "neis-checklist",
		Short:        "NEIS work checklist in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(conf, userID, gatewayURL)
		},
	}
	root.Flags().StringVarP(&userID, "user", "u", "", "checklist user id (defaults to this device's id)")
	root.Flags().StringVar(&gatewayURL, "server", conf.Checklist.GatewayURL, "API server URL; local file only when empty")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(conf *core.Config, userID, gatewayURL string) error {
	// the TUI owns stdout, log to a file next to the local slot
	if err := os.MkdirAll(conf.Checklist.LocalDir, 0o755); err != nil {
		return errors.Wrap(err, "creating local directory")
	}
	logFile, err := os.OpenFile(filepath.Join(conf.Checklist.LocalDir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrap(err, "opening log file")
	}
	defer logFile.Close()

	logger := logsvc.NewRollbarLogger(log.New(logFile, "TUI : ", log.LstdFlags|log.Lmicroseconds), conf)
	defer logger.Close()

	cat, err := catalog.Load()
	if err != nil {
		return errors.Wrap(err, "loading catalog")
	}

	if userID = core.CleanString(userID); userID == "" {
		if userID, err = deviceUserID(conf.Checklist.LocalDir); err != nil {
			return err
		}
	}

	store := checklist.NewStore(
		newGateway(conf, gatewayURL),
		userID,
		checklist.WithLogger(logger),
		checklist.WithSaveTimeout(conf.Checklist.SaveTimeout),
	)

	m := newModel(cat, store, catalog.CurrentPeriod(nowFunc()))
	if _, err = tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "running program")
	}

	// flush pending saves before exiting
	store.Wait()
	return nil
}

// newGateway prefers the API server and keeps a local copy in the file slot.
func newGateway(conf *core.Config, gatewayURL string) checklist.Gateway {
	slot := gatewaysvc.NewFileSlot(conf.Checklist.LocalDir, core.DefaultString(conf.Checklist.StorageKey, "neis-checklist-state"))
	if gatewayURL = core.CleanString(gatewayURL); gatewayURL == "" {
		return slot
	}
	return checklist.Fallback(gatewaysvc.NewHTTPGateway(gatewayURL, nil), slot)
}

// deviceUserID returns the id stored in `dir`, generating one on first use.
func deviceUserID(dir string) (string, error) {
	path := filepath.Join(dir, deviceIDFile)
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "reading device id")
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating local directory")
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", errors.Wrap(err, "writing device id")
	}
	return id, nil
}
