package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// errUnknownAction reports an action tag the controller cannot execute
var errUnknownAction = errors.New("unknown action")

// SystemController executes the OS-level actions resolved by the
// classifier: launching and closing applications, screenshots, system
// info and file search. The engine itself never calls this; the caller
// executes and reports the outcome back to the learner.
type SystemController struct {
	searchDepth   int
	searchTimeout time.Duration
}

// NewSystemController creates an action executor with the given search
// limits
func NewSystemController(searchDepth int, searchTimeout time.Duration) *SystemController {
	if searchDepth <= 0 {
		searchDepth = 10
	}
	if searchTimeout <= 0 {
		searchTimeout = 30 * time.Second
	}
	return &SystemController{
		searchDepth:   searchDepth,
		searchTimeout: searchTimeout,
	}
}

// Execute dispatches an action/target pair and returns a human-readable
// outcome. respond/help actions need no OS work and succeed trivially.
func (sc *SystemController) Execute(action string, target string) (string, error) {
	switch action {
	case "respond", "help":
		return "", nil
	case "open_app":
		return sc.OpenApp(target)
	case "close_app":
		return sc.CloseApp(target)
	case "search":
		return sc.SearchFiles(target)
	case "screenshot":
		return sc.Screenshot()
	case "system_info":
		return sc.SystemInfo()
	default:
		return "", fmt.Errorf("%w: %s", errUnknownAction, action)
	}
}

// OpenApp launches an application by name
func (sc *SystemController) OpenApp(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("no application name given")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-a", name)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", name)
	default:
		cmd = exec.Command(name)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to open %s: %v", name, err)
	}
	// Detach; the assistant does not supervise launched applications
	go cmd.Wait()

	return fmt.Sprintf("Opened %s", name), nil
}

// CloseApp terminates an application by name
func (sc *SystemController) CloseApp(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("no application name given")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("taskkill", "/IM", name+".exe", "/F")
	default:
		cmd = exec.Command("pkill", "-f", name)
	}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to close %s: %v", name, err)
	}
	return fmt.Sprintf("Closed %s", name), nil
}

// Screenshot captures the screen to a timestamped file in the home
// directory
func (sc *SystemController) Screenshot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	outPath := filepath.Join(homeDir, fmt.Sprintf("screenshot_%d.png", time.Now().Unix()))

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("screencapture", outPath)
	case "windows":
		return "", fmt.Errorf("screenshot not supported on windows")
	default:
		if _, err := exec.LookPath("gnome-screenshot"); err == nil {
			cmd = exec.Command("gnome-screenshot", "-f", outPath)
		} else {
			cmd = exec.Command("scrot", outPath)
		}
	}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %v", err)
	}
	return fmt.Sprintf("Screenshot saved to %s", outPath), nil
}

// SystemInfo reports basic host information
func (sc *SystemController) SystemInfo() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return fmt.Sprintf("Host: %s | OS: %s/%s | CPUs: %d",
		hostname, runtime.GOOS, runtime.GOARCH, runtime.NumCPU()), nil
}

// SearchFiles looks for files under the home directory whose name
// contains the term, bounded by depth, time and result count
func (sc *SystemController) SearchFiles(term string) (string, error) {
	if strings.TrimSpace(term) == "" {
		return "", fmt.Errorf("no search term given")
	}

	root, err := os.UserHomeDir()
	if err != nil {
		root = "."
	}

	termLower := strings.ToLower(term)
	deadline := time.Now().Add(sc.searchTimeout)
	matches := make([]string, 0, 20)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if time.Now().After(deadline) || len(matches) >= 20 {
			return filepath.SkipAll
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && strings.Count(rel, string(filepath.Separator)) >= sc.searchDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if strings.Contains(strings.ToLower(d.Name()), termLower) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search failed: %v", err)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No files matching %q found", term), nil
	}
	return fmt.Sprintf("Found %d matches:\n%s", len(matches), strings.Join(matches, "\n")), nil
}
