package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/storage"
)

type Context struct {
	Store storage.Provider
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	draftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	submittedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func statusLabel(status models.Status) string {
	switch status {
	case models.StatusSubmitted:
		return submittedStyle.Render("submitted")
	default:
		return draftStyle.Render("draft")
	}
}

// confirm asks a y/N question on stdin and treats anything but y/yes as no.
func confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func summaryLine(rec models.Record) string {
	date := rec.Date
	if date == "" {
		date = "????-??-??"
	}
	title := rec.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s  [%s]  %s", date, statusLabel(rec.Status), titleStyle.Render(title))
	if rec.SiteLocation != "" {
		line += faintStyle.Render("  @ " + rec.SiteLocation)
	}
	return line
}
