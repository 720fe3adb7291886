package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/sources"
)

// preferredLanguages are tried when picking from a listed set of tracks.
var preferredLanguages = map[string]bool{"en": true, "en-US": true, "en-GB": true}

// UnavailableError means every fallback strategy failed. Reasons holds
// one diagnostic per attempted strategy, in order.
type UnavailableError struct {
	VideoID string
	Reasons []string
}

func (e *UnavailableError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to fetch transcript for video %s, errors encountered:", e.VideoID)
	for i, reason := range e.Reasons {
		fmt.Fprintf(&b, "\n%d. %s", i+1, reason)
	}
	b.WriteString("\nthe video may not have any transcripts available")
	return b.String()
}

// EmptyTranscriptError means a transcript was fetched but contained no
// text. This is distinct from a fetch failure.
type EmptyTranscriptError struct {
	VideoID string
}

func (e *EmptyTranscriptError) Error() string {
	return fmt.Sprintf("transcript for video %s was fetched but contains no text content", e.VideoID)
}

// Acquirer fetches transcripts with ordered fallbacks and registers the
// accepted transcript in the source ledger.
type Acquirer struct {
	provider Provider
	ledger   *sources.Ledger
	log      *logrus.Entry
}

func NewAcquirer(provider Provider, ledger *sources.Ledger) *Acquirer {
	return &Acquirer{
		provider: provider,
		ledger:   ledger,
		log:      logrus.WithField("component", "transcript"),
	}
}

// Acquire fetches the transcript for a video, trying in order: an
// explicit English transcript, the default transcript, and finally the
// listed tracks preferring English variants. Returns the extracted text
// and the language it came from.
func (a *Acquirer) Acquire(ctx context.Context, videoID string) (string, string, error) {
	var reasons []string

	a.log.WithField("video_id", videoID).Info("attempting to fetch English transcript")
	payload, err := a.provider.Fetch(ctx, videoID, "en")
	if err == nil {
		return a.accept(videoID, payload, "en")
	}
	reasons = append(reasons, fmt.Sprintf("English transcript: %v", err))

	a.log.WithField("video_id", videoID).Info("attempting to fetch default transcript")
	payload, err = a.provider.Fetch(ctx, videoID)
	if err == nil {
		return a.accept(videoID, payload, "default")
	}
	reasons = append(reasons, fmt.Sprintf("default transcript: %v", err))

	a.log.WithField("video_id", videoID).Info("listing available transcripts")
	text, language, err := a.fetchFromList(ctx, videoID)
	if err == nil {
		return a.acceptText(videoID, text, language)
	}
	reasons = append(reasons, fmt.Sprintf("list transcripts: %v", err))

	return "", "", &UnavailableError{VideoID: videoID, Reasons: reasons}
}

func (a *Acquirer) fetchFromList(ctx context.Context, videoID string) (string, string, error) {
	available, err := a.provider.List(ctx, videoID)
	if err != nil {
		return "", "", err
	}
	if len(available) == 0 {
		return "", "", fmt.Errorf("no transcripts available for this video")
	}

	selected := available[0]
	for _, track := range available {
		if preferredLanguages[track.LanguageCode] {
			selected = track
			break
		}
	}

	payload, err := selected.Fetch(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error fetching %s transcript: %w", selected.LanguageCode, err)
	}
	return extractText(payload), selected.LanguageCode, nil
}

func (a *Acquirer) accept(videoID string, payload Payload, language string) (string, string, error) {
	return a.acceptText(videoID, extractText(payload), language)
}

// acceptText validates the extracted text and registers it as the
// session's primary source. The transcript is always considered used.
func (a *Acquirer) acceptText(videoID, text, language string) (string, string, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", &EmptyTranscriptError{VideoID: videoID}
	}

	a.ledger.Add(sources.Transcript, text, 1.0)
	a.ledger.MarkUsed(sources.Transcript)

	a.log.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": language,
		"chars":    len(text),
	}).Info("transcript extracted")
	return text, language, nil
}
