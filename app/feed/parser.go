package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Summary, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	summary := &Summary{
		Title:    feed.Title,
		Episodes: make([]Episode, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		summary.Episodes = append(summary.Episodes, p.normalizeItem(item))
	}

	return summary, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Episode {
	episode := Episode{
		GUID:  cmp.Or(item.GUID, item.Link),
		Title: item.Title,
	}

	if item.ITunesExt != nil {
		episode.Duration = item.ITunesExt.Duration
	}

	// RSS 2.0 allows a single enclosure per item
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enclosure := item.Enclosures[0]
		episode.EnclosureURL = enclosure.URL
		episode.EnclosureType = enclosure.Type
		episode.EnclosureLength = enclosure.Length
	}

	return episode
}
