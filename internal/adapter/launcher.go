package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens trailer URLs in an external player
type Launcher struct {
	command string   // configured player command, empty for system default
	args    []string // additional arguments for the player
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startDetached,
		logger:  logger,
	}
}

// Launch opens url in the configured player or system default
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return errors.New("nothing to launch")
	}
	name, args := l.commandFor(url)
	l.logger.Info("launching player", "command", name, "args", args)
	if err := l.start(name, args...); err != nil {
		l.logger.Warn("failed to launch player", "command", name, "error", err)
		return err
	}
	return nil
}

// commandFor returns the command line that opens url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		// URL goes at the end
		args := append(append([]string{}, l.args...), url)
		return l.command, args
	}

	switch l.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}

// startDetached starts the command without waiting for it
func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // reap the child
	return nil
}
