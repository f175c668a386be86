package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/framepeek-cli/framepeek/color"
	"github.com/framepeek-cli/framepeek/constant"
	"github.com/framepeek-cli/framepeek/icon"
	"github.com/framepeek-cli/framepeek/preview"
	"github.com/framepeek-cli/framepeek/style"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/muesli/reflow/wrap"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// previewCardWidth is the rendered width of the preview bubble in cells.
const previewCardWidth = 36

func (b *statefulBubble) View() string {
	switch b.state {
	case scrubState:
		return b.viewScrub()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewScrub() string {
	lines := []string{
		style.Title(constant.Framepeek) + " " + style.Faint(style.Truncate(b.width - 12)(b.options.Target)),
		"",
	}

	lines = append(lines, b.renderCard()...)
	lines = append(lines,
		"",
		b.progressC.ViewAs(b.hoverPercent/100),
		b.renderTimeline(),
		"",
		style.Truncate(b.width)(b.statusMessage),
	)

	return b.renderLines(true, lines)
}

// renderCard renders the preview bubble anchored above the scrub position,
// clamped so it never overflows the terminal edges.
func (b *statefulBubble) renderCard() []string {
	var content string

	switch {
	case b.previewState.IsLoading:
		content = b.spinnerC.View() + " Capturing " + util.FormatTimestamp(b.previewState.Time)
	case b.previewState.Err.IsPresent():
		message, _ := b.previewState.Err.Get()
		content = icon.Get(icon.Fail) + " " + wrap.String(message, previewCardWidth-4)
	case b.previewState.Thumbnail.IsPresent():
		handle, _ := b.previewState.Thumbnail.Get()
		width, height := handle.Size()
		content = fmt.Sprintf(
			"%s %s  %dx%d  %.1fKiB\n%s",
			icon.Get(icon.Camera),
			style.Fg(color.Purple)(util.FormatTimestamp(b.previewState.Time)),
			width, height,
			float64(len(handle.Bytes()))/1024,
			style.Faint(style.Truncate(previewCardWidth-4)(handle.Path())),
		)
	default:
		content = style.Faint("No preview yet")
	}

	anchored := preview.ClampPosition(b.hoverPercent, float64(b.width), previewCardWidth)
	indent := util.Max(0, int(anchored/100*float64(b.width))-previewCardWidth/2)

	var lines []string
	for _, line := range strings.Split(cardStyle.Width(previewCardWidth-2).Render(content), "\n") {
		lines = append(lines, strings.Repeat(" ", indent)+line)
	}

	return lines
}

// renderTimeline renders the hover timestamp against the media duration.
func (b *statefulBubble) renderTimeline() string {
	duration := b.engine.Duration()
	hovered := util.FormatTimestamp(b.hoverPercent / 100 * duration)
	total := util.FormatTimestamp(duration)

	gap := b.width - len(hovered) - len(total)
	if gap < 1 {
		gap = 1
	}

	return style.Bold(hovered) + strings.Repeat(" ", gap) + style.Faint(total)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
