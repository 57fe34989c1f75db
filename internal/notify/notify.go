// Package notify delivers desktop notifications and the completion chime by
// shelling out to whatever the platform offers. The rest of the app only
// decides when to call it; everything here contains its own failures.
package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nvaleckas/stepwise/internal/util"
)

// Notifier delivers a user-visible notification and/or plays the chime.
// Send reports delivered (true) or skipped/failed (false); it never panics
// and never returns an error, because no notification is worth breaking a
// timer loop over.
type Notifier interface {
	Send(title, body string, sound bool) bool
	PlaySound()
}

// Desktop dispatches over notify-send, osascript, or PowerShell depending on
// the platform, with WSL routed to the Windows side.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (n *Desktop) Send(title, body string, sound bool) bool {
	if sound {
		n.PlaySound()
	}
	var cmd *exec.Cmd
	switch {
	case isWSL():
		cmd = exec.Command("powershell.exe", "-Command",
			fmt.Sprintf(`[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms'); [System.Windows.Forms.MessageBox]::Show('%s', '%s')`, psEscape(body), psEscape(title)))
	case runtime.GOOS == "linux":
		cmd = exec.Command("notify-send", "--app-name=stepwise", title, body)
	case runtime.GOOS == "darwin":
		cmd = exec.Command("osascript", "-e",
			fmt.Sprintf("display notification %q with title %q", body, title))
	case runtime.GOOS == "windows":
		cmd = exec.Command("powershell", "-Command",
			fmt.Sprintf(`[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms'); [System.Windows.Forms.MessageBox]::Show('%s', '%s')`, psEscape(body), psEscape(title)))
	default:
		return false
	}
	if err := cmd.Run(); err != nil {
		util.LogError("send notification", err)
		return false
	}
	return true
}

// PlaySound fires the chime without waiting for the player to finish. When
// no system sound or player is available it degrades to the terminal bell.
func (n *Desktop) PlaySound() {
	if isWSL() || runtime.GOOS == "windows" {
		shell := "powershell"
		if isWSL() {
			shell = "powershell.exe"
		}
		go runQuiet(shell, "-Command", "[console]::beep(800,200)")
		return
	}
	switch runtime.GOOS {
	case "darwin":
		go runQuiet("afplay", "/System/Library/Sounds/Glass.aiff")
	case "linux":
		chime := firstExisting(
			"/usr/share/sounds/freedesktop/stereo/complete.oga",
			"/usr/share/sounds/freedesktop/stereo/bell.oga",
		)
		if chime == "" {
			bell()
			return
		}
		players := [][]string{
			{"paplay", chime},
			{"mpv", "--no-video", "--really-quiet", chime},
			{"ffplay", "-nodisp", "-autoexit", "-v", "quiet", chime},
		}
		for _, p := range players {
			if _, err := exec.LookPath(p[0]); err == nil {
				go runQuiet(p[0], p[1:]...)
				return
			}
		}
		bell()
	default:
		bell()
	}
}

// Nop drops everything. Stands in when notifications are disabled and in
// tests that only care that a call happened somewhere else.
type Nop struct{}

func (Nop) Send(title, body string, sound bool) bool { return false }

func (Nop) PlaySound() {}

func runQuiet(name string, args ...string) {
	if err := exec.Command(name, args...).Run(); err != nil {
		util.LogError("play sound", err)
	}
}

func bell() {
	fmt.Fprint(os.Stdout, "\a")
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	if os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSLENV") != "" {
		return true
	}
	if data, err := os.ReadFile("/proc/version"); err == nil {
		return strings.Contains(string(data), "microsoft") || strings.Contains(string(data), "WSL")
	}
	return false
}
