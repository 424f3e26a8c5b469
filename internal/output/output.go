// Package output renders an analysis for the terminal: a colored profile
// summary, the review text, chart-ready breakdowns and a repository table.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ghreview/internal/domain"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// UI writes rendered output to Out.
type UI struct {
	Out io.Writer
}

// New creates a UI writing to stdout.
func New() *UI {
	return &UI{Out: os.Stdout}
}

var (
	heading = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	accent  = color.New(color.FgHiGreen).SprintFunc()
	muted   = color.New(color.FgHiBlack).SprintFunc()
)

// RenderJSON writes the whole analysis as pretty-printed JSON.
func (u *UI) RenderJSON(analysis *domain.Analysis) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis to JSON: %w", err)
	}
	fmt.Fprintln(u.Out, string(data))
	return nil
}

// RenderText writes the human-readable report: profile header, review
// paragraphs, language and star breakdowns, then the repository table.
func (u *UI) RenderText(analysis *domain.Analysis) {
	u.renderHeader(analysis)
	fmt.Fprintln(u.Out)
	fmt.Fprintln(u.Out, heading("Review"))
	fmt.Fprintln(u.Out)
	fmt.Fprintln(u.Out, analysis.Review.String())
	fmt.Fprintln(u.Out)
	u.renderLanguages(analysis.Languages)
	fmt.Fprintln(u.Out)
	u.renderTopByStars(analysis.Metrics)
	fmt.Fprintln(u.Out)
	u.renderTable(analysis.Metrics.Table)
}

func (u *UI) renderHeader(analysis *domain.Analysis) {
	p := analysis.Profile
	name := p.Login
	if p.Name != "" {
		name = fmt.Sprintf("%s (%s)", p.Name, p.Login)
	}
	fmt.Fprintln(u.Out, heading(name))
	if p.Company != "" {
		fmt.Fprintf(u.Out, "%s %s\n", muted("company:"), p.Company)
	}
	if p.Location != "" {
		fmt.Fprintf(u.Out, "%s %s\n", muted("location:"), p.Location)
	}
	fmt.Fprintf(u.Out, "%s %d followers, %d public repos, on GitHub since %d\n",
		muted("profile:"), p.Followers, p.PublicRepos, p.CreatedAt.Year())
	m := analysis.Metrics
	fmt.Fprintf(u.Out, "%s %d stars / %d forks across %d owned repos (mean %.1f, median %.1f stars per repo)\n",
		muted("totals:"), m.TotalStars, m.TotalForks, len(analysis.Repositories), m.StarMean, m.StarMedian)
	if analysis.SkippedLanguages > 0 {
		fmt.Fprintf(u.Out, "%s language data missing for %d repositories\n",
			muted("note:"), analysis.SkippedLanguages)
	}
}

func (u *UI) renderLanguages(languages domain.LanguageHistogram) {
	fmt.Fprintln(u.Out, heading("Languages"))
	doughnut := languages.Doughnut()
	if len(doughnut.Labels) == 0 {
		fmt.Fprintln(u.Out, muted("no language data"))
		return
	}
	for i, label := range doughnut.Labels {
		fmt.Fprintf(u.Out, "  %-16s %s\n", label, accent(fmt.Sprintf("%d KiB", doughnut.SizesKiB[i])))
	}
}

func (u *UI) renderTopByStars(metrics domain.Metrics) {
	fmt.Fprintln(u.Out, heading("Top repositories by stars"))
	bar := metrics.StarsBar()
	if len(bar.Names) == 0 {
		fmt.Fprintln(u.Out, muted("no data"))
		return
	}
	for i, name := range bar.Names {
		fmt.Fprintf(u.Out, "  %-28s %s\n", name, accent(fmt.Sprintf("%d", bar.Stars[i])))
	}
}

func (u *UI) renderTable(repos []domain.Repository) {
	fmt.Fprintln(u.Out, heading("Recently updated repositories"))
	if len(repos) == 0 {
		fmt.Fprintln(u.Out, muted("no data"))
		return
	}
	table := u.table([]string{"Name", "Stars", "Forks", "Language", "Updated", "Description"})
	for _, repo := range repos {
		table.Append([]string{
			repo.Name,
			fmt.Sprintf("%d", repo.Stars),
			fmt.Sprintf("%d", repo.Forks),
			repo.Language,
			repo.UpdatedAt.Format("2006-01-02"),
			truncate(repo.Description, 48),
		})
	}
	table.Render()
}

// table creates a tablewriter configured with consistent borderless styling.
func (u *UI) table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
