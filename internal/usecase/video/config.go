package video

import (
	"fmt"
	"strings"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/db"
)

const (
	// Lifetimes of the signed URLs we hand out: derived artifacts are linked
	// from feeds and need a long window, ad-hoc source access does not.
	artifactLinkTTL = 7 * 24 * time.Hour
	adHocLinkTTL    = time.Hour

	uploadLinkTTL = 5 * time.Minute

	// A run still sitting in PROCESSING after this long is assumed dead.
	stuckRunAge = 2 * time.Hour
)

func sourceObjectKey(userID, filename string, now time.Time) string {
	return fmt.Sprintf("uploads/%s/%d-%s", userID, now.UnixNano(), sanitizeFilename(filename))
}

func shortObjectKey(videoID db.UUID, index int) string {
	return fmt.Sprintf("shorts/%s/part_%03d.mp4", videoID, index)
}

func shortThumbnailKey(videoID db.UUID, index int) string {
	return fmt.Sprintf("thumbnails/%s/part_%03d.jpg", videoID, index)
}

func videoThumbnailKey(videoID db.UUID) string {
	return fmt.Sprintf("thumbnails/%s/main.jpg", videoID)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
