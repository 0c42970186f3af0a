package subscription

import (
	"encoding/xml"
	"io"
	"time"
)

// opmlDocument is the minimal OPML 2.0 shape needed to export a flat list
// of podcast subscriptions - one outline element per podcast, no nesting.
type opmlDocument struct {
	XMLName xml.Name    `xml:"opml"`
	Version string      `xml:"version,attr"`
	Head    opmlHead    `xml:"head"`
	Body    opmlBody    `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text    string `xml:"text,attr"`
	Type    string `xml:"type,attr"`
	XMLURL  string `xml:"xmlUrl,attr"`
	HTMLURL string `xml:"htmlUrl,attr,omitempty"`
}

// ExportOPML writes every subscribed podcast to w as an OPML 2.0 document,
// the format most podcast clients accept for bulk subscription import.
func (m *Manager) ExportOPML(w io.Writer) error {
	podcasts, err := m.List()
	if err != nil {
		return errExportFailed(err)
	}

	doc := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title:       "podcast-tui subscriptions",
			DateCreated: fmtTime(time.Now().UTC()),
		},
	}
	for _, p := range podcasts {
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Text:   opmlTitle(p),
			Type:   "rss",
			XMLURL: p.FeedURL,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errExportFailed(err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errExportFailed(err)
	}
	return nil
}
