// Package browser opens folders in the platform's graphical file browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/hairyhenderson/go-which"
)

// Opener launches a desktop file browser on a folder.
type Opener struct {
	Command string
	Args    []string
}

// openerFor returns the command used on goos to reveal a folder.
func openerFor(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// Detect returns the opener for this platform, or nil when its command is
// not on PATH.
func Detect() *Opener {
	return detect(runtime.GOOS, which.Found)
}

func detect(goos string, found func(...string) bool) *Opener {
	cmd := openerFor(goos)
	if !found(cmd) {
		return nil
	}
	return &Opener{Command: cmd}
}

// Reveal starts the opener and does not wait for the window to close.
func (o *Opener) Reveal(path string) error {
	args := append(append([]string(nil), o.Args...), path)
	cmd := exec.Command(o.Command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.Command, err)
	}
	go cmd.Wait()
	return nil
}
