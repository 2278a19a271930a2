package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ledger-guard/internal/application"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(view application.StatusView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Ledger Guard"),
		s.header.Render(fmt.Sprintf("guards: %s", guardChainLabel(view.Modules))),
		s.header.Render(fmt.Sprintf("default policy: %d per %s", view.Default.Limit, formatWindow(view.Default.Window))),
		s.header.Render(fmt.Sprintf("accounts: %d", len(view.Accounts))),
	}

	if len(view.Accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts tracked yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range view.Accounts {
		lines = append(lines, s.section.Render(renderAccount(account, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func guardChainLabel(modules []string) string {
	if len(modules) == 0 {
		return "none"
	}

	return strings.Join(modules, " > ")
}

func renderAccount(quota application.AccountQuota, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.account.Render(string(quota.Account)),
		" ",
		s.badge.Render(fmt.Sprintf("[%s]", quota.Status.Label())),
	)

	parts := []string{title, quotaLine(quota, opts, s)}

	parts = append(parts, s.detail.Render(fmt.Sprintf("balance: %d   available: %s", quota.Balance, quota.Available.Label())))

	if !quota.PendingOptOut.IsZero() {
		parts = append(parts, s.detail.Render("opt-out requested at "+formatClock(quota.PendingOptOut, opts.Now)))
	}
	if !quota.PendingOptIn.IsZero() {
		parts = append(parts, s.detail.Render("opt-in requested at "+formatClock(quota.PendingOptIn, opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func quotaLine(quota application.AccountQuota, opts RenderOptions, s styles) string {
	if quota.Status.OptedOut() {
		return s.detail.Render("quota: unlimited (opted out)")
	}

	if quota.Policy.Window <= 0 {
		return s.warning.Render("quota: unavailable (zero window length)")
	}

	leftPercent := 0.0
	if quota.Policy.Limit > 0 {
		leftPercent = clampPercent(100 * float64(quota.Available.Remaining) / float64(quota.Policy.Limit))
	}

	label := s.quotaKey.Render("quota:")
	bar := renderProgressBar(100-leftPercent, 24, s)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))
	meta := percentStyle.Render(fmt.Sprintf("%2.0f%% left", leftPercent))

	resetStyle := lipgloss.NewStyle().Foreground(resetTimeColor(quota.NextWindowAt, opts.Now, quota.Policy.Window))
	reset := resetStyle.Render(fmt.Sprintf("(%s)", formatResetRelative(quota.NextWindowAt, opts.Now)))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		bar,
		" ",
		meta,
		" ",
		reset,
	)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatWindow(window time.Duration) string {
	if window <= 0 {
		return "0s"
	}

	window = window.Round(time.Second)
	hours := window / time.Hour
	minutes := (window % time.Hour) / time.Minute
	seconds := (window % time.Minute) / time.Second

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if seconds > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}

	return b.String()
}

func formatClock(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04")
	}

	return at.Format("15:04 on 02 Jan")
}

func formatResetRelative(resetsAt, now time.Time) string {
	if now.IsZero() {
		return "resets " + formatClock(resetsAt, now)
	}

	if !resetsAt.After(now) {
		return "resets now"
	}

	remaining := resetsAt.Sub(now)
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("resets in %d %s (%s)", hours, suffix, resetsAt.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	if days < 1 {
		days = 1
	}
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}

	return fmt.Sprintf("resets in %d %s (%s)", days, suffix, resetsAt.Format("15:04 on 02 Jan"))
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	// Guard against division by zero
	if max == min {
		return lipgloss.Color("255")
	}

	// Normalize value between 0 and 1
	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// Color 240 (gray/faded) at min, Color 255 (bright white) at max
	// ANSI 256 greyscale ramp: 232 (darkest) to 255 (brightest)
	baseColor := 240.0
	targetColor := 255.0

	// Linear interpolation
	interpolated := baseColor + (targetColor-baseColor)*normalized
	colorCode := int(interpolated)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

func resetTimeColor(resetsAt, now time.Time, window time.Duration) lipgloss.Color {
	if now.IsZero() || !resetsAt.After(now) || window <= 0 {
		return lipgloss.Color("255") // Bright white when no time context
	}

	remaining := resetsAt.Sub(now)

	// Closer to 0 = whiter (255), a full window away = more faded (240)
	inverted := window.Seconds() - remaining.Seconds()
	return interpolateColor(inverted, 0, window.Seconds())
}
