package transcript

import "regexp"

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&?]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/v/([^/?]+)`),
}

// ExtractVideoID returns the video id of a YouTube watch, short, embed or /v/ URL
func ExtractVideoID(url string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
