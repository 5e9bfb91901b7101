package main

import (
	"fmt"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/alarmist/pkg/account"
	"github.com/borgmon/alarmist/pkg/config"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/notify"
	"github.com/borgmon/alarmist/pkg/platform"
	"github.com/borgmon/alarmist/pkg/scheduler"
	"github.com/borgmon/alarmist/pkg/storage"
	"github.com/borgmon/alarmist/pkg/store"
)

type Alarmist struct {
	app         fyne.App
	env         config.Env
	configStore *store.ConfigStore
	configMu    sync.RWMutex
	config      *models.Config
	users       *store.UserStore
	accounts    *account.Service
	gate        *notify.Gate
	scheduler   *scheduler.Scheduler

	mainWindow     fyne.Window
	dashboard      *Dashboard
	settingsWindow *SettingsWindow
}

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(env.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a := newAlarmist(app.NewWithID(env.AppID), env)
	a.initialize()
	a.run()
}

func newAlarmist(fyneApp fyne.App, env config.Env) *Alarmist {
	a := &Alarmist{
		app:         fyneApp,
		env:         env,
		configStore: store.NewConfigStore(fyneApp.Preferences()),
	}
	a.config = a.configStore.Load()

	kv := newStorage(fyneApp, env.Storage)
	a.users = store.NewUserStore(kv)
	a.accounts = account.NewService(a.users)
	a.gate = notify.NewGate(kv)
	a.scheduler = scheduler.New(a.gate, &systemNotifier{a: a}, &alertWindowAlerter{a: a})

	return a
}

// newStorage picks where user records and the permission decision live
func newStorage(fyneApp fyne.App, kind string) storage.Storage {
	if kind == config.StorageMemory {
		logger.Log.Warnw("using in-memory storage, nothing will be persisted")
		return storage.NewMemory()
	}
	return storage.NewPreferences(fyneApp.Preferences())
}

func (a *Alarmist) initialize() {
	// Sync autostart state with config on startup
	if err := setupAutostart(a.settings().AutoStart); err != nil {
		logger.Log.Warnw("failed to setup autostart", "error", err)
	}

	a.mainWindow = a.app.NewWindow("Alarmist")
	a.mainWindow.Resize(fyne.NewSize(480, 560))
	a.mainWindow.SetCloseIntercept(func() {
		// keep running in the tray so armed alarms still fire
		a.mainWindow.Hide()
	})

	a.setupSystemTray()
	a.showLogin("")
}

func (a *Alarmist) run() {
	a.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	a.mainWindow.Show()
	a.app.Run()
}

// Arm arms label and refreshes the tray. It is the Armer used by the dashboard.
func (a *Alarmist) Arm(label string) (models.ArmedAlarm, error) {
	armed, err := a.scheduler.Arm(label)
	if err != nil {
		return armed, err
	}
	a.updateSystemTrayMenu()
	return armed, nil
}

func (a *Alarmist) showMainWindow() {
	a.mainWindow.Show()
	a.mainWindow.RequestFocus()
}

// settings returns a copy of the current config; timer goroutines read it while the UI may save
func (a *Alarmist) settings() models.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return *a.config
}

func (a *Alarmist) saveConfig(cfg *models.Config) {
	a.configMu.Lock()
	a.config = cfg
	a.configMu.Unlock()
	a.configStore.Save(cfg)
}

func (a *Alarmist) quit() {
	stopped := a.scheduler.Shutdown()
	logger.Log.Infow("quitting", "fired", a.scheduler.Fired(), "unfired", len(stopped))
	a.app.Quit()
}
