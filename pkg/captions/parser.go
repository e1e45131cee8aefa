package captions

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
)

// TrackFormat represents the wire format of a caption track
type TrackFormat string

const (
	FormatTimedText TrackFormat = "timedtext"
	FormatJSON3     TrackFormat = "json3"
)

// Entry is one raw timestamped caption line as returned by the track endpoint
type Entry struct {
	Text  string
	Start float64
}

// Parser handles parsing caption track payloads
type Parser struct{}

// NewParser creates a new caption parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses caption content based on its format
func (p *Parser) Parse(content string, format TrackFormat) ([]Entry, error) {
	switch format {
	case FormatTimedText:
		return p.parseTimedText(content)
	case FormatJSON3:
		return p.parseJSON3(content)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// timedTextDoc mirrors the legacy timedtext XML layout:
// <transcript><text start="1.2" dur="3.4">line</text>...</transcript>
type timedTextDoc struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Value string  `xml:",chardata"`
}

func (p *Parser) parseTimedText(content string) ([]Entry, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parsing timedtext xml: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		entries = append(entries, Entry{
			Text:  line.Value,
			Start: line.Start,
		})
	}
	return entries, nil
}

// json3Doc mirrors the json3 caption layout: events with millisecond offsets
// and text segments
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs int64      `json:"tStartMs"`
	Segs    []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

func (p *Parser) parseJSON3(content string) ([]Entry, error) {
	var doc json3Doc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parsing json3 captions: %w", err)
	}

	var entries []Entry
	for _, event := range doc.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := sb.String()
		// json3 interleaves newline-only layout events between caption lines
		if strings.TrimSpace(text) == "" {
			continue
		}
		entries = append(entries, Entry{
			Text:  text,
			Start: float64(event.StartMs) / 1000.0,
		})
	}
	return entries, nil
}
