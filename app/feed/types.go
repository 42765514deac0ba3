package feed

import "errors"

// ErrNoChannel is returned when the source document has no <channel> under its root.
var ErrNoChannel = errors.New("source feed has no <channel> element")

// Namespace pairs the prefix written into the output document with the URI
// used to match source elements.
type Namespace struct {
	Prefix string
	URI    string
}

var (
	NoNamespace = Namespace{}
	ITunes      = Namespace{Prefix: "itunes", URI: "http://www.itunes.com/dtds/podcast-1.0.dtd"}
	Atom        = Namespace{Prefix: "atom", URI: "http://www.w3.org/2005/Atom"}
)

// Qualify returns the prefixed tag name, e.g. "itunes:author".
func (ns Namespace) Qualify(tag string) string {
	if ns.Prefix == "" {
		return tag
	}
	return ns.Prefix + ":" + tag
}

// Field is one element copied from the source feed. ByValue fields get a fresh
// element carrying the source text and are skipped when that text is blank;
// the rest are moved over as-is whenever present.
type Field struct {
	Tag       string
	Namespace Namespace
	ByValue   bool
}

const (
	SelfLinkFile         = "podcast.xml"
	SelfLinkType         = "application/rss+xml"
	DefaultEnclosureType = "audio/mpeg"
)

var channelFields = []Field{
	{Tag: "title", ByValue: true},
	{Tag: "link", ByValue: true},
	{Tag: "language", ByValue: true},
	{Tag: "copyright", ByValue: true},
	{Tag: "description", ByValue: true},
}

var channelITunesFields = []Field{
	{Tag: "author", Namespace: ITunes},
	{Tag: "owner", Namespace: ITunes},
	{Tag: "image", Namespace: ITunes},
	{Tag: "category", Namespace: ITunes},
	{Tag: "explicit", Namespace: ITunes},
	{Tag: "type", Namespace: ITunes},
	{Tag: "summary", Namespace: ITunes},
	{Tag: "subtitle", Namespace: ITunes},
}

var itemFields = []Field{
	{Tag: "title"},
	{Tag: "link"},
	{Tag: "guid"},
	{Tag: "pubDate"},
	{Tag: "description"},
	{Tag: "duration", Namespace: ITunes},
	{Tag: "episode", Namespace: ITunes},
	{Tag: "episodeType", Namespace: ITunes},
	{Tag: "explicit", Namespace: ITunes},
	{Tag: "image", Namespace: ITunes},
	{Tag: "author", Namespace: ITunes},
	{Tag: "summary", Namespace: ITunes},
	{Tag: "subtitle", Namespace: ITunes},
}

// Summary describes a rebuilt feed as read back by the Parser.
type Summary struct {
	Title    string
	Episodes []Episode
}

type Episode struct {
	GUID            string
	Title           string
	Duration        string
	EnclosureURL    string
	EnclosureType   string
	EnclosureLength string
}

// Enclosures counts episodes carrying an enclosure.
func (s *Summary) Enclosures() int {
	count := 0
	for _, episode := range s.Episodes {
		if episode.EnclosureURL != "" {
			count++
		}
	}
	return count
}
