package extract

import (
	"net/url"
	"strings"

	"github.com/prospectio/leadscout/models"
)

// linkedinReserved lists LinkedIn path segments that are site sections, not
// profile handles.
var linkedinReserved = map[string]struct{}{
	"company": {},
	"jobs":    {},
	"feed":    {},
}

// ResolveProfile maps a profile URL to a (platform, username) pair.
//
// The username is always a single string: multi-segment paths are joined
// with "_". Malformed URLs and paths that carry no recognizable handle
// degrade to an empty username, never an error.
func ResolveProfile(rawURL string) (models.Platform, string) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return models.PlatformOther, ""
	}

	host := strings.ToLower(u.Host)
	segments := splitPath(u.Path)

	switch {
	case strings.Contains(host, "twitter.com"):
		return models.PlatformTwitter, strings.Join(segments, "_")
	case strings.Contains(host, "instagram.com"):
		return models.PlatformInstagram, strings.Join(segments, "_")
	case strings.Contains(host, "linkedin.com"):
		return models.PlatformLinkedIn, linkedinUsername(segments)
	case strings.Contains(host, "facebook.com"):
		return models.PlatformFacebook, strings.Join(segments, "_")
	case strings.Contains(host, "tiktok.com"):
		return models.PlatformTikTok, strings.Join(segments, "_")
	case strings.Contains(host, "youtube.com"):
		return models.PlatformYouTube, youtubeUsername(segments)
	default:
		return models.PlatformOther, ""
	}
}

// linkedinUsername resolves /in/<handle>, /pub/<handle>, or a bare /<handle>
// that is not a reserved section. Anything else yields no username.
func linkedinUsername(segments []string) string {
	switch {
	case len(segments) >= 2 && segments[0] == "in":
		return segments[1]
	case len(segments) >= 2 && segments[0] == "pub":
		return segments[1]
	case len(segments) >= 1:
		if _, reserved := linkedinReserved[segments[0]]; reserved {
			return ""
		}
		return segments[0]
	default:
		return ""
	}
}

// youtubeUsername resolves /user/<handle> and /channel/<id> forms; otherwise
// the first path segment, if any.
func youtubeUsername(segments []string) string {
	if len(segments) >= 2 && (segments[0] == "user" || segments[0] == "channel") {
		return segments[1]
	}
	if len(segments) >= 1 {
		return segments[0]
	}
	return ""
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// isSocialURL reports whether the URL points at one of the known social
// profile domains.
func isSocialURL(rawURL string) bool {
	for _, domain := range models.SocialDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}
