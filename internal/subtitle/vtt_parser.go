package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var vttTimestampRegex = regexp.MustCompile(
	`^(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})\s+-->\s+(?:(\d+):)?(\d{2}):(\d{2})\.(\d{3})(?:\s|$)`,
)

func parseVTT(text string) ([]Cue, []Warning, error) {
	if !strings.Contains(text, "-->") {
		return nil, nil, &ParseError{
			Format: FormatVTT,
			Reason: "no cue timings found",
		}
	}

	var (
		cues     []Cue
		warnings []Warning
	)
	for i, blk := range splitBlocks(text) {
		first := strings.TrimSpace(blk.lines[0])
		if i == 0 && strings.HasPrefix(first, "WEBVTT") {
			continue
		}
		if isVTTMetadataBlock(first) {
			continue
		}

		cue, err := parseVTTBlock(blk)
		if err != nil {
			warnings = append(warnings, Warning{Line: blk.line, Reason: err.Error()})
			continue
		}
		cue.Index = len(cues) + 1
		cues = append(cues, cue)
	}

	return cues, warnings, nil
}

func isVTTMetadataBlock(first string) bool {
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		if first == keyword || strings.HasPrefix(first, keyword+" ") {
			return true
		}
	}
	return false
}

func parseVTTBlock(blk block) (Cue, error) {
	lines := blk.lines

	// optional cue identifier
	if !strings.Contains(lines[0], "-->") {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return Cue{}, fmt.Errorf("missing cue timing line")
	}

	matches := vttTimestampRegex.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if len(matches) != 9 {
		return Cue{}, fmt.Errorf("malformed cue timing line %q", lines[0])
	}
	start, err := parseClockParts(
		orZero(matches[1]), matches[2], matches[3], matches[4],
	)
	if err != nil {
		return Cue{}, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := parseClockParts(
		orZero(matches[5]), matches[6], matches[7], matches[8],
	)
	if err != nil {
		return Cue{}, fmt.Errorf("invalid end timestamp: %w", err)
	}

	textLines := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		textLines = append(textLines, stripHTMLTags(line))
	}

	return newCue(start, end, joinLines(textLines))
}

func orZero(hours string) string {
	if hours == "" {
		return "0"
	}
	return hours
}
