package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultWatchURL = "https://www.youtube.com/watch"

// captionTracksRegex locates the caption track list embedded in the watch
// page's player response JSON
var captionTracksRegex = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

// captionTrack is one entry of the embedded track list
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Fetcher retrieves caption tracks for YouTube videos via the public
// timedtext endpoint
type Fetcher struct {
	httpClient *http.Client
	watchURL   string
	parser     *Parser
}

// NewFetcher creates a new caption fetcher
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		watchURL:   defaultWatchURL,
		parser:     NewParser(),
	}
}

// SetWatchURL overrides the watch page base URL (for testing)
func (f *Fetcher) SetWatchURL(url string) {
	f.watchURL = url
}

// Fetch returns the ordered caption entries for a video. Failures carry a
// structured FailureKind: no track or disabled captions are permanent, every
// network or HTTP error is transient.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) ([]Entry, error) {
	trackURL, err := f.resolveTrackURL(ctx, videoID)
	if err != nil {
		return nil, err
	}

	trackURL, format := preferJSON3(trackURL)

	body, err := f.get(ctx, trackURL)
	if err != nil {
		return nil, newError(FailureTransient, videoID, err)
	}

	entries, err := f.parser.Parse(body, format)
	if err != nil {
		return nil, newError(FailureTransient, videoID, err)
	}
	return entries, nil
}

// preferJSON3 asks the timedtext endpoint for the json3 payload. A track URL
// that already pins a format is left untouched; anything other than json3
// comes back as the default timedtext XML.
func preferJSON3(trackURL string) (string, TrackFormat) {
	u, err := url.Parse(trackURL)
	if err != nil {
		return trackURL, FormatTimedText
	}

	query := u.Query()
	if pinned := query.Get("fmt"); pinned != "" {
		if pinned == "json3" {
			return trackURL, FormatJSON3
		}
		return trackURL, FormatTimedText
	}

	query.Set("fmt", "json3")
	u.RawQuery = query.Encode()
	return u.String(), FormatJSON3
}

// resolveTrackURL scrapes the watch page for the video's caption track list
// and picks the best track
func (f *Fetcher) resolveTrackURL(ctx context.Context, videoID string) (string, error) {
	page, err := f.get(ctx, fmt.Sprintf("%s?v=%s", f.watchURL, videoID))
	if err != nil {
		return "", newError(FailureTransient, videoID, err)
	}

	match := captionTracksRegex.FindStringSubmatch(page)
	if match == nil {
		if strings.Contains(page, `"playableInEmbed":false`) {
			return "", newError(FailureDisabled, videoID, fmt.Errorf("captions disabled"))
		}
		return "", newError(FailureUnavailable, videoID, fmt.Errorf("no caption tracks found"))
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(match[1]), &tracks); err != nil {
		return "", newError(FailureTransient, videoID, fmt.Errorf("parsing caption track list: %w", err))
	}
	if len(tracks) == 0 {
		return "", newError(FailureUnavailable, videoID, fmt.Errorf("empty caption track list"))
	}

	return pickTrack(tracks).BaseURL, nil
}

// pickTrack prefers a manually authored English track, then any English
// track, then the first track
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == "en" && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == "en" {
			return t
		}
	}
	return tracks[0]
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
