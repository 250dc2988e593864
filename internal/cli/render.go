package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"staybook/internal/model"
	"staybook/internal/pagination"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Faint(true)
	availableStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	unavailableStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderPropertyPage writes one listing page as a table followed by its page labels
func renderPropertyPage(w io.Writer, page *model.PropertyPage) error {
	if page.Total == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No properties match the selected filters."))
		return err
	}

	summary := fmt.Sprintf("%d matching, page %d of %d", page.Total, page.Page, page.TotalPages)
	if _, err := fmt.Fprintf(w, "%s  %s\n\n", titleStyle.Render("Properties"), mutedStyle.Render(summary)); err != nil {
		return err
	}

	if len(page.Properties) == 0 {
		if _, err := fmt.Fprintln(w, mutedStyle.Render("This page is empty.")); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tTYPE\tRATE\tSTARS\tHOST")
		for _, p := range page.Properties {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID,
				p.Name,
				formatLocation(p),
				formatKind(p),
				formatRate(p.Rate),
				strconv.FormatFloat(p.Stars, 'f', -1, 64),
				p.HostID,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nPages: %s\n", pagination.FormatLabels(page.PageLabels, page.Page))
	return err
}

func formatLocation(p model.Property) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.City, p.Territory, p.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func formatKind(p model.Property) string {
	switch {
	case p.HouseType == "":
		return string(p.PlaceType)
	case p.PlaceType == "":
		return string(p.HouseType)
	}
	return string(p.HouseType) + " / " + string(p.PlaceType)
}

// formatRate renders a nightly rate with digit grouping, e.g. $1,250/night
func formatRate(rate float64) string {
	p := message.NewPrinter(language.English)
	if rate == float64(int64(rate)) {
		return p.Sprintf("$%d/night", int64(rate))
	}
	return p.Sprintf("$%.2f/night", rate)
}

func nights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return strconv.Itoa(n) + " nights"
}
