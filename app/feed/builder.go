package feed

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
)

type Builder struct {
	cleaner *Cleaner
	now     func() time.Time
}

func NewBuilder(cleaner *Cleaner) *Builder {
	return &Builder{
		cleaner: cleaner,
		now:     time.Now,
	}
}

// Run rebuilds the podcast feed in src as a fresh RSS 2.0 document whose
// self link points at siteBasePath. It fails with ErrNoChannel when the source
// root has no channel.
func (b *Builder) Run(src string, siteBasePath string) (string, error) {
	source := etree.NewDocument()
	source.ReadSettings.PreserveCData = true
	// The text has already been decoded to UTF-8, whatever the declaration says.
	source.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := source.ReadFromString(src); err != nil {
		return "", fmt.Errorf("failed to parse feed: %w", err)
	}

	root := source.Root()
	if root == nil {
		return "", ErrNoChannel
	}
	srcChannel := findChild(root, NoNamespace, "channel")
	if srcChannel == nil {
		return "", fmt.Errorf("%w (root is <%s>)", ErrNoChannel, root.FullTag())
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:"+ITunes.Prefix, ITunes.URI)
	rss.CreateAttr("xmlns:"+Atom.Prefix, Atom.URI)

	channel := rss.CreateElement("channel")

	copyFields(channel, srcChannel, channelFields)

	selfLink := channel.CreateElement(Atom.Qualify("link"))
	selfLink.CreateAttr("href", strings.TrimRight(siteBasePath, "/")+"/"+SelfLinkFile)
	selfLink.CreateAttr("rel", "self")
	selfLink.CreateAttr("type", SelfLinkType)

	copyFields(channel, srcChannel, channelITunesFields)

	channel.CreateElement("lastBuildDate").SetText(b.now().UTC().Format(time.RFC1123Z))

	for _, srcItem := range findChildren(srcChannel, NoNamespace, "item") {
		item := channel.CreateElement("item")
		copyFields(item, srcItem, itemFields)
		b.copyEnclosure(item, srcItem)
	}

	indent := etree.NewIndentSettings()
	indent.Spaces = 2
	indent.PreserveLeafWhitespace = true
	doc.IndentWithSettings(indent)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize feed: %w", err)
	}

	return out, nil
}

func (b *Builder) copyEnclosure(item, srcItem *etree.Element) {
	enclosure := findChild(srcItem, NoNamespace, "enclosure")
	if enclosure == nil {
		return
	}

	href := enclosure.SelectAttr("url")
	if href == nil {
		return
	}

	out := item.CreateElement("enclosure")
	out.CreateAttr("url", b.cleaner.Run(href.Value))

	if mediaType := enclosure.SelectAttr("type"); mediaType != nil {
		out.CreateAttr("type", mediaType.Value)
	} else {
		out.CreateAttr("type", DefaultEnclosureType)
	}

	if length := enclosure.SelectAttr("length"); length != nil {
		out.CreateAttr("length", length.Value)
	}
}

// copyFields appends the fields found in src to dst in table order.
func copyFields(dst, src *etree.Element, fields []Field) {
	for _, field := range fields {
		el := findChild(src, field.Namespace, field.Tag)
		if el == nil {
			continue
		}

		if field.ByValue {
			text := el.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			dst.CreateElement(field.Namespace.Qualify(field.Tag)).SetText(text)
			continue
		}

		qualify(el, field.Namespace)
		dst.AddChild(el)
	}
}

// qualify rewrites the prefix of every element under el that belongs to ns
// and declares on el any other prefix the subtree relies on, since those
// declarations may live on source ancestors that are not copied.
// Must run while el is still attached to the source tree so prefixes resolve.
func qualify(el *etree.Element, ns Namespace) {
	var rewrite []*etree.Element
	declare := make(map[string]string)

	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if ns.URI != "" && e.NamespaceURI() == ns.URI {
			rewrite = append(rewrite, e)
		} else if e.Space != "" {
			declare[e.Space] = e.NamespaceURI()
		}
		for i := range e.Attr {
			attr := &e.Attr[i]
			if attr.Space != "" && attr.Space != "xmlns" {
				declare[attr.Space] = attr.NamespaceURI()
			}
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(el)

	for _, prefix := range slices.Sorted(maps.Keys(declare)) {
		uri := declare[prefix]
		// itunes and atom are declared on the output root
		if uri == "" || prefix == "xml" || prefix == ITunes.Prefix || prefix == Atom.Prefix {
			continue
		}
		if el.SelectAttr("xmlns:"+prefix) == nil {
			el.CreateAttr("xmlns:"+prefix, uri)
		}
	}

	for _, e := range rewrite {
		e.Space = ns.Prefix
	}
}

func findChild(parent *etree.Element, ns Namespace, tag string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == tag && child.NamespaceURI() == ns.URI {
			return child
		}
	}
	return nil
}

func findChildren(parent *etree.Element, ns Namespace, tag string) []*etree.Element {
	var children []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == tag && child.NamespaceURI() == ns.URI {
			children = append(children, child)
		}
	}
	return children
}
