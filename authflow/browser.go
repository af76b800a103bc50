package authflow

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"

	apperrors "github.com/postdrop/postdrop-go/internal/errors"
)

// Window is an authorization window the flow can observe and close.
type Window interface {
	// Closed reports whether the user has closed the window.
	Closed() bool
	Close() error
}

// Browser opens authorization windows.
type Browser interface {
	Open(url string) (Window, error)
}

// SystemBrowser opens the URL in the user's default browser. It cannot
// observe the resulting window, so Closed always reports false and the
// handshake ends through a completion message or context cancellation.
type SystemBrowser struct{}

var _ Browser = SystemBrowser{}

func (SystemBrowser) Open(url string) (Window, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(apperrors.ErrWindowBlocked, err.Error())
	}
	return systemWindow{}, nil
}

type systemWindow struct{}

func (systemWindow) Closed() bool { return false }
func (systemWindow) Close() error { return nil }
