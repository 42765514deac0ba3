package tasks

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lysyi3m/rss-rebuilder/app/feed"
)

func renderEpisodes(summary *feed.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("%s", summary.Title)

	tw.AppendHeader(table.Row{"#", "Title", "Duration", "Enclosure", "Length"})
	for i, episode := range summary.Episodes {
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			episode.Title,
			episode.Duration,
			episode.EnclosureURL,
			episode.EnclosureLength,
		})
	}
	tw.AppendFooter(table.Row{"", "", "", strconv.Itoa(summary.Enclosures()) + " enclosures", ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: 48},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
