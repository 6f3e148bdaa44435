package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ahorro/internal/core"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	styleBarFull = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	styleBarRest = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a"))
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func renderLoading(msg string) string { return styleMuted.Render(msg) }
func renderEmpty(msg string) string   { return styleMuted.Render(msg) }
func renderSuccess(msg string) string { return styleOK.Render(msg) }
func renderError(msg string) string   { return styleErr.Render(msg) }

func renderPlanList(plans []core.Plan) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Planes de ahorro"))
	b.WriteString("\n\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "  %s  %s\n", styleTitle.Render(p.Name), styleMuted.Render(p.ID))
		fmt.Fprintf(&b, "    meta %s en %d meses", p.TargetAmount.StringFixed(2), p.Months)
		if p.Motive != "" {
			fmt.Fprintf(&b, "  %s", styleMuted.Render("("+p.Motive+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderPlanDetail(d core.PlanDetail) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(d.Plan.Name))
	if d.Plan.Motive != "" {
		b.WriteString("  " + styleMuted.Render(d.Plan.Motive))
	}
	b.WriteString("\n\n")

	remaining := core.RemainingAmount(d.Plan.TargetAmount, d.TotalPaid)
	fmt.Fprintf(&b, "  %s %d%%\n", progressBar(d.Progress, 30), d.Progress)
	fmt.Fprintf(&b, "  pagado %s de %s, faltan %s\n\n",
		d.TotalPaid.StringFixed(2),
		d.Plan.TargetAmount.StringFixed(2),
		remaining.StringFixed(2))

	b.WriteString(styleTitle.Render("Miembros"))
	b.WriteString("\n")
	if len(d.Members) == 0 {
		b.WriteString(styleMuted.Render("  sin miembros") + "\n")
	}
	for _, m := range d.Members {
		fmt.Fprintf(&b, "  %-20s cuota %s  %s\n",
			m.Name, m.ContributionPerMonth.StringFixed(2), styleMuted.Render(m.ID))
	}

	b.WriteString("\n")
	b.WriteString(styleTitle.Render("Pagos"))
	b.WriteString("\n")
	if len(d.PaymentsWithMember) == 0 {
		b.WriteString(styleMuted.Render("  sin pagos") + "\n")
	}
	for _, p := range d.PaymentsWithMember {
		fmt.Fprintf(&b, "  %-20s %10s  %s\n",
			p.MemberName, p.Payment.Amount.StringFixed(2), styleMuted.Render(p.Payment.Date))
	}
	return b.String()
}

// progressBar renders percent as a fixed-width block bar.
func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return styleBarFull.Render(strings.Repeat("█", filled)) +
		styleBarRest.Render(strings.Repeat("░", width-filled))
}
