package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	timedtextEndpoint = "https://www.youtube.com/api/timedtext"
	trackListEndpoint = "https://video.google.com/timedtext"
)

// YouTubeProvider fetches caption tracks over YouTube's public
// timedtext endpoints.
type YouTubeProvider struct {
	httpClient *http.Client
}

func NewYouTubeProvider() *YouTubeProvider {
	return &YouTubeProvider{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch requests a caption track. With no language, the track list is
// consulted and the first track is treated as the video's default.
func (p *YouTubeProvider) Fetch(ctx context.Context, videoID string, languages ...string) (Payload, error) {
	if len(languages) == 0 {
		available, err := p.List(ctx, videoID)
		if err != nil {
			return Payload{}, err
		}
		if len(available) == 0 {
			return Payload{}, fmt.Errorf("no default transcript for video %s", videoID)
		}
		return available[0].Fetch(ctx)
	}
	return p.fetchTrack(ctx, videoID, languages[0])
}

// List enumerates the caption tracks the video offers.
func (p *YouTubeProvider) List(ctx context.Context, videoID string) ([]Available, error) {
	query := url.Values{"type": {"list"}, "v": {videoID}}
	body, err := p.get(ctx, trackListEndpoint+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("error listing transcripts: %w", err)
	}

	var list struct {
		Tracks []struct {
			LangCode string `xml:"lang_code,attr"`
		} `xml:"track"`
	}
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("error parsing track list: %w", err)
	}

	available := make([]Available, 0, len(list.Tracks))
	for _, track := range list.Tracks {
		lang := track.LangCode
		available = append(available, Available{
			LanguageCode: lang,
			Fetch: func(ctx context.Context) (Payload, error) {
				return p.fetchTrack(ctx, videoID, lang)
			},
		})
	}
	return available, nil
}

func (p *YouTubeProvider) fetchTrack(ctx context.Context, videoID, language string) (Payload, error) {
	query := url.Values{"v": {videoID}, "lang": {language}, "fmt": {"json3"}}
	body, err := p.get(ctx, timedtextEndpoint+"?"+query.Encode())
	if err != nil {
		return Payload{}, fmt.Errorf("error fetching %s captions: %w", language, err)
	}
	if len(body) == 0 {
		return Payload{}, fmt.Errorf("no %s captions for video %s", language, videoID)
	}

	var timedtext struct {
		Events []struct {
			StartMs    int64 `json:"tStartMs"`
			DurationMs int64 `json:"dDurationMs"`
			Segs       []struct {
				UTF8 string `json:"utf8"`
			} `json:"segs"`
		} `json:"events"`
	}
	if err := json.Unmarshal(body, &timedtext); err != nil {
		return Payload{}, fmt.Errorf("error parsing captions: %w", err)
	}

	var payload Payload
	for _, event := range timedtext.Events {
		text := ""
		for _, seg := range event.Segs {
			text += seg.UTF8
		}
		if text == "" || text == "\n" {
			continue
		}
		payload.Snippets = append(payload.Snippets, Snippet{
			Text:     text,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	return payload, nil
}

func (p *YouTubeProvider) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
