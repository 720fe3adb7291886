package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const oembedEndpoint = "https://www.youtube.com/oembed?format=json&url=https%%3A%%2F%%2Fwww.youtube.com%%2Fwatch%%3Fv%%3D%s"

// TitleResolver looks up video titles via the public oEmbed endpoint.
// Lookups are cached and failures fall back to a synthetic placeholder
// title, so resolution never fails.
type TitleResolver struct {
	httpClient *http.Client
	titles     *cache.Cache
	log        *logrus.Entry
}

func NewTitleResolver() *TitleResolver {
	return &TitleResolver{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		titles:     cache.New(30*time.Minute, 10*time.Minute),
		log:        logrus.WithField("component", "title"),
	}
}

// Resolve returns the video title, or "YouTube Video <id>" when the
// lookup fails for any reason.
func (r *TitleResolver) Resolve(ctx context.Context, videoID string) string {
	if cached, ok := r.titles.Get(videoID); ok {
		return cached.(string)
	}

	title, err := r.lookup(ctx, videoID)
	if err != nil {
		r.log.WithField("video_id", videoID).Warnf("title lookup failed: %v", err)
		return fmt.Sprintf("YouTube Video %s", videoID)
	}

	r.titles.Set(videoID, title, cache.DefaultExpiration)
	return title
}

func (r *TitleResolver) lookup(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(oembedEndpoint, videoID), nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching oEmbed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oEmbed request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("error decoding oEmbed response: %w", err)
	}
	if payload.Title == "" {
		return "", fmt.Errorf("oEmbed response contained no title")
	}
	return payload.Title, nil
}
