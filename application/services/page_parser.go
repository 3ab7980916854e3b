package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

var (
	firstPageMarkerRegexp = regexp.MustCompile(`Page\s*1:`)
	pageMarkerRegexp      = regexp.MustCompile(`Page\s*(\d+):`)
	whitespaceRegexp      = regexp.MustCompile(`\s+`)
)

// ExtractFinalStory returns the script text starting at the LAST "Page 1:"
// marker. The script back-end sometimes thinks out loud before restating the
// formatted story, so only the final restatement is authoritative. Returns
// false when no marker exists.
func ExtractFinalStory(raw string) (string, bool) {
	locations := firstPageMarkerRegexp.FindAllStringIndex(raw, -1)
	if locations == nil {
		return "", false
	}
	start := locations[len(locations)-1][0]
	return strings.TrimSpace(raw[start:]), true
}

// ParseStoryPages scans for repeating "Page N:" markers; each page's content
// runs until the next marker or end of text. Ordinals come from the markers
// and are never recomputed, so a mislabeled script keeps its labels and
// callers treat the list positionally.
func ParseStoryPages(storyText string) []domain.Page {
	markers := pageMarkerRegexp.FindAllStringSubmatchIndex(storyText, -1)
	pages := make([]domain.Page, 0, len(markers))
	for i, marker := range markers {
		ordinal, err := strconv.Atoi(storyText[marker[2]:marker[3]])
		if err != nil {
			continue
		}
		contentEnd := len(storyText)
		if i+1 < len(markers) {
			contentEnd = markers[i+1][0]
		}
		text := NormalizeWhitespace(storyText[marker[1]:contentEnd])
		if text == "" {
			continue
		}
		pages = append(pages, domain.Page{
			Index: ordinal,
			Text:  text,
		})
	}
	return pages
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(s, " "))
}
