package services

import "strings"

const placeholderScene = "A beautiful scene"

// SplitIntoScenes cuts a flat block of prose into exactly n scene
// descriptions, one per line. Short inputs are padded by cycling the
// available lines; an empty input yields n placeholders. Pure and
// deterministic.
func SplitIntoScenes(text string, n int) []string {
	if n < 1 {
		return nil
	}

	lines := make([]string, 0, n)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	scenes := make([]string, n)
	for i := range scenes {
		if len(lines) == 0 {
			scenes[i] = placeholderScene
		} else {
			scenes[i] = lines[i%len(lines)]
		}
	}
	return scenes
}
