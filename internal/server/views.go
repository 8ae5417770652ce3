package server

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/peekknuf/skatergrade/internal/criteria"
	"github.com/peekknuf/skatergrade/internal/export"
	"github.com/peekknuf/skatergrade/internal/grading"
	"github.com/peekknuf/skatergrade/internal/report"
)

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// PlayerView renders the report card of one exported player.
func PlayerView(p export.Player) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		overall := grading.RatingFor(p.OverallPercentile)
		if _, err := fmt.Fprintf(w,
			`<h1>%s</h1><p class="meta">%s &middot; %s &middot; %d GP &middot; %.1f min</p>`+
				`<p class="answer" style="color:%s">Answer: %s</p><p>(%.1fth percentile) grade %s</p><pre>%s</pre>`,
			templ.EscapeString(p.Name), templ.EscapeString(p.Team), templ.EscapeString(p.Position),
			p.Games, p.IceTimeMinutes, overall.Color(), overall, p.OverallPercentile,
			templ.EscapeString(p.OverallGrade), report.BarWith(p.OverallPercentile, report.AnswerBarWidth, report.AnswerFill)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<table class="categories">`); err != nil {
			return err
		}
		for _, c := range criteria.All {
			cat := p.Categories.Get(c)
			color := grading.Rating(cat.Rating).Color()
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td><code>%s</code></td><td style="color:%s">%s</td><td>%.1f</td><td>%s</td></tr>`,
				templ.EscapeString(cat.Label), report.Bar(cat.Percentile, report.BreakdownBarWidth),
				color, templ.EscapeString(cat.Grade), cat.Percentile, categoryDetail(cat)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
	return layout(p.Name, body)
}

// NotFoundView renders the page for an unknown slug.
func NotFoundView(slug string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Player not found</h1><p>No player with slug &ldquo;%s&rdquo;.</p>`, templ.EscapeString(slug))
		return err
	})
	return layout("Player not found", body)
}

func categoryDetail(cat *export.Category) string {
	switch {
	case cat.Components != nil:
		return fmt.Sprintf("xG %.1f%% &middot; TK/60 %.2f &middot; BLK/60 %.2f",
			cat.Components.XGPct, cat.Components.TakeawaysP60, cat.Components.BlocksP60)
	case cat.Value != nil:
		return fmt.Sprintf("%g", *cat.Value)
	}
	return ""
}
