package feed

import "encoding/xml"

// rssDocument covers the RSS 2.0 + common podcast-namespace extensions
// shape enough to extract the fields the core needs; it deliberately does
// not model the full RSS grammar (byte-level feed grammar is out of scope).
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"

type rssChannel struct {
	Title        string    `xml:"title"`
	Link         string    `xml:"link"`
	Description  string    `xml:"description"`
	Language     string    `xml:"language"`
	Image        rssImage  `xml:"image"`
	ITunesImage  itunesImg `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd image"`
	Categories   []string  `xml:"category"`
	Author       string    `xml:"author"`
	ITunesAuthor string    `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd author"`
	Items        []rssItem `xml:"item"`
}

type rssImage struct {
	URL string `xml:"url"`
}

type itunesImg struct {
	Href string `xml:"href,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        string        `xml:"guid"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	Enclosure   rssEnclosure  `xml:"enclosure"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}

// atomDocument covers the Atom 1.0 subset needed by the core.
type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Links   []atomLink  `xml:"link"`
	Subtitle string     `xml:"subtitle"`
	Author  atomAuthor  `xml:"author"`
	Updated string      `xml:"updated"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href   string `xml:"href,attr"`
	Rel    string `xml:"rel,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	ID       string     `xml:"id"`
	Title    string     `xml:"title"`
	Summary  string     `xml:"summary"`
	Content  string     `xml:"content"`
	Published string    `xml:"published"`
	Updated  string      `xml:"updated"`
	Links    []atomLink `xml:"link"`
}
