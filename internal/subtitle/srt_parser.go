package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// hours at or above this no longer fit in a time.Duration
const maxClockHours = math.MaxInt64 / int64(time.Hour)

var srtTimestampRegex = regexp.MustCompile(
	`^(\d+):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{1,3})`,
)

// blank-line separated group of lines, line is the 1-based number of the
// first one
type block struct {
	line  int
	lines []string
}

func splitBlocks(text string) []block {
	var (
		blocks  []block
		current *block
	)
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &block{line: i + 1}
		}
		current.lines = append(current.lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

func parseSRT(text string) ([]Cue, []Warning, error) {
	if !strings.Contains(text, "-->") {
		return nil, nil, &ParseError{
			Format: FormatSRT,
			Reason: "no timestamp lines found",
		}
	}

	var (
		cues     []Cue
		warnings []Warning
	)
	for _, blk := range splitBlocks(text) {
		cue, err := parseSRTBlock(blk)
		if err != nil {
			warnings = append(warnings, Warning{Line: blk.line, Reason: err.Error()})
			continue
		}
		cue.Index = len(cues) + 1
		cues = append(cues, cue)
	}

	return cues, warnings, nil
}

func parseSRTBlock(blk block) (Cue, error) {
	lines := blk.lines

	// the index line is optional and its value is not trusted
	if !strings.Contains(lines[0], "-->") {
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			return Cue{}, fmt.Errorf("expected index or timestamp, got %q", lines[0])
		}
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return Cue{}, fmt.Errorf("missing timestamp line")
	}

	matches := srtTimestampRegex.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if len(matches) != 9 {
		return Cue{}, fmt.Errorf("malformed timestamp line %q", lines[0])
	}
	start, err := parseClockParts(matches[1], matches[2], matches[3], matches[4])
	if err != nil {
		return Cue{}, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := parseClockParts(matches[5], matches[6], matches[7], matches[8])
	if err != nil {
		return Cue{}, fmt.Errorf("invalid end timestamp: %w", err)
	}

	textLines := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		textLines = append(textLines, stripOverrideTags(stripHTMLTags(line)))
	}

	return newCue(start, end, joinLines(textLines))
}

func newCue(start, end time.Duration, text string) (Cue, error) {
	if end <= start {
		return Cue{}, fmt.Errorf(
			"end %s is not after start %s",
			end,
			start,
		)
	}
	if text == "" {
		return Cue{}, fmt.Errorf("empty text")
	}
	return Cue{Start: start, End: end, Text: text}, nil
}

// parseClockParts builds a duration from hour, minute, second and fraction
// digits. The fraction is read as a decimal, so "5", "50" and "500" all mean
// 500ms.
func parseClockParts(
	hours, minutes, seconds, fraction string,
) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	if m >= 60 || s >= 60 {
		return 0, fmt.Errorf("minutes and seconds must be below 60")
	}
	if int64(h) >= maxClockHours {
		return 0, fmt.Errorf("hours %d out of range", h)
	}

	var ms int
	if fraction != "" {
		if len(fraction) > 3 {
			return 0, fmt.Errorf("fraction %q too precise", fraction)
		}
		ms, err = strconv.Atoi(fraction + strings.Repeat("0", 3-len(fraction)))
		if err != nil {
			return 0, err
		}
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
