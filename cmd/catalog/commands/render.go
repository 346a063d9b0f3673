// cmd/catalog/commands/render.go
package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/models"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.Faint)
)

// statusDot renders the date status as a coloured bullet.
func statusDot(status models.DateStatus) string {
	switch status {
	case models.DateStatusNew:
		return color.GreenString("●")
	case models.DateStatusAvg:
		return color.YellowString("●")
	default:
		return color.RedString("●")
	}
}

func renderProductsTable(w io.Writer, products []models.Product, now time.Time) {
	if len(products) == 0 {
		mutedColor.Fprintln(w, i18n.T(i18n.DefaultLanguage(), i18n.KeySearchNoResults))
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("", "Name", "Category", "Brand", "Measure", "Price", "ID")

	for _, p := range products {
		table.Append(
			statusDot(p.DateStatus(now)),
			p.Name,
			deref(p.Category),
			deref(p.Brand),
			deref(p.Measure),
			formatPrice(p.Price),
			p.ID,
		)
	}

	table.Render()
	mutedColor.Fprintln(w, i18n.T(i18n.DefaultLanguage(), i18n.KeySearchResultsFound, len(products)))
}

func renderProductDetail(w io.Writer, p models.Product, now time.Time) {
	fmt.Fprintf(w, "\n%s %s\n\n", statusDot(p.DateStatus(now)), color.New(color.Bold).Sprint(p.Name))
	fmt.Fprintf(w, "ID:         %s\n", p.ID)
	fmt.Fprintf(w, "Category:   %s\n", deref(p.Category))
	fmt.Fprintf(w, "Brand:      %s\n", deref(p.Brand))
	fmt.Fprintf(w, "Details:    %s\n", deref(p.Details))
	fmt.Fprintf(w, "Measure:    %s\n", deref(p.Measure))
	fmt.Fprintf(w, "Price:      %s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "Created At: %s\n", p.CreatedAt.Format(time.RFC3339))
	if p.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated At: %s\n", p.UpdatedAt.Format(time.RFC3339))
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func formatPrice(price float64) string {
	return "R$ " + strconv.FormatFloat(price, 'f', 2, 64)
}
