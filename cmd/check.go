// Package cmd implements the command-line interface for framepeek.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/style"
)

// CheckDependencies verifies the availability of required system dependencies.
// The ffmpeg backend additionally relies on ffprobe for duration discovery.
func CheckDependencies(backend string) {
	deps := []string{backend}
	if backend == "ffmpeg" {
		deps = append(deps, "ffprobe")
	}

	for _, dep := range deps {
		if _, err := exec.LookPath(dep); err != nil {
			printMissingDependencyError(dep)
			os.Exit(1)
		}
	}
}

func printMissingDependencyError(dep string) {
	install := dep
	if dep == "ffprobe" {
		install = "ffmpeg"
	}

	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + install
	case "linux":
		installCmd = "sudo apt install " + install
	case "windows":
		installCmd = "scoop install " + install
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
