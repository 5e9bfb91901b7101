package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/emersion/go-autostart"
)

func setupAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	app := &autostart.App{
		Name:        "alarmist",
		DisplayName: "Alarmist",
		Exec:        []string{execPath},
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		logger.Log.Infow("autostart enabled", "exec", execPath)
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		logger.Log.Infow("autostart disabled")
	}

	return nil
}
