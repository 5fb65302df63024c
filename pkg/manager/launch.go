package manager

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"sshgo/pkg/browser"
)

// ErrEmptyCommand is returned when a leaf has no command tokens.
var ErrEmptyCommand = errors.New("empty command")

// Launcher picks the connection client and builds its argv.
type Launcher struct {
	Client   string
	Fallback string

	// LookPath defaults to exec.LookPath. Tests replace it.
	LookPath func(string) (string, error)
}

// NewLauncher returns a Launcher using the clients named in the settings.
func NewLauncher(cfg *Config) *Launcher {
	l := &Launcher{Client: defaultClient, Fallback: defaultFallbackClient}
	if cfg != nil {
		if cfg.Client != "" {
			l.Client = cfg.Client
		}
		if cfg.FallbackClient != "" {
			l.Fallback = cfg.FallbackClient
		}
	}
	return l
}

// Resolve returns the preferred client when it is on $PATH, the fallback otherwise.
// The fallback is returned unchecked; a missing binary surfaces when it is run.
func (l *Launcher) Resolve() string {
	look := l.LookPath
	if look == nil {
		look = exec.LookPath
	}
	if l.Client != "" {
		if _, err := look(l.Client); err == nil {
			return l.Client
		}
	}
	if l.Fallback != "" {
		return l.Fallback
	}
	return l.Client
}

// Command returns the full argv for a launch request.
func (l *Launcher) Command(req *browser.LaunchRequest) ([]string, error) {
	return BuildClientCommand(l.Resolve(), req)
}

// BuildClientCommand returns client followed by the leaf's command tokens.
func BuildClientCommand(client string, req *browser.LaunchRequest) ([]string, error) {
	if req == nil || len(req.Args) == 0 {
		return nil, ErrEmptyCommand
	}
	if client == "" {
		return nil, fmt.Errorf("no connection client configured")
	}
	argv := make([]string, 0, len(req.Args)+1)
	argv = append(argv, client)
	argv = append(argv, req.Args...)
	return argv, nil
}

// RestoreTerminalForExec best-effort restores a sane terminal state before handing
// the terminal to the client: cursor shown, attributes reset, `stty sane` on the
// controlling tty. Failures are ignored.
func RestoreTerminalForExec() {
	// CSI ? 25 h shows the cursor, CSI 0 m resets attributes.
	_, _ = fmt.Fprint(os.Stdout, "\033[?25h\033[0m")

	sttyPath := "/bin/stty"
	if _, err := os.Stat(sttyPath); err != nil {
		return
	}

	cmd := exec.Command(sttyPath, "sane")
	if tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0); err == nil {
		defer tty.Close()
		cmd.Stdin = tty
	} else {
		cmd.Stdin = os.Stdin
	}
	_ = cmd.Run()
}
