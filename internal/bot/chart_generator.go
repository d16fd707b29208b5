package bot

import (
	"fmt"
	"time"

	"github.com/go-analyze/charts"

	"github.com/bexly/bexly-bot/internal/repository"
)

// GenerateExpenseChart creates a pie chart of expense totals by category.
// Returns PNG image as bytes.
func GenerateExpenseChart(totals []repository.CategoryTotal, title string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, ct := range totals {
		values = append(values, ct.Total.InexactFloat64())
		names = append(names, ct.Title)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// chartFilename creates a filename like "chart_week_2026-08-24.png".
func chartFilename(weekStart time.Time) string {
	return fmt.Sprintf("chart_week_%s.png", weekStart.Format("2006-01-02"))
}
