package subtitle

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var assTimestampRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})(?:\.(\d{1,3}))?$`)

// columns assumed when the [Events] section has no Format line
var defaultASSColumns = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

var assTextReplacer = strings.NewReplacer(`\N`, "\n", `\n`, "\n", `\h`, " ")

// column layout of the [Events] section
type assEventFormat struct {
	columns  int
	startIdx int
	endIdx   int
	textIdx  int
}

func newASSEventFormat(columns []string) (assEventFormat, error) {
	f := assEventFormat{columns: len(columns), startIdx: -1, endIdx: -1, textIdx: -1}
	for i, col := range columns {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "start":
			f.startIdx = i
		case "end":
			f.endIdx = i
		case "text":
			f.textIdx = i
		}
	}
	if f.startIdx < 0 || f.endIdx < 0 || f.textIdx < 0 {
		return f, fmt.Errorf("event format must name Start, End and Text columns")
	}
	if f.textIdx != len(columns)-1 {
		return f, fmt.Errorf("text must be the last event column")
	}
	return f, nil
}

func parseASS(text string) ([]Cue, []Warning, error) {
	format, err := newASSEventFormat(defaultASSColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		cues          []Cue
		warnings      []Warning
		inEvents      bool
		sawEvents     bool
		sawFormatLine bool
	)
	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.ToLower(trimmed[1 : len(trimmed)-1])
			inEvents = section == "events"
			sawEvents = sawEvents || inEvents
			continue
		}
		if !inEvents {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Format":
			if sawFormatLine {
				continue
			}
			sawFormatLine = true
			format, err = newASSEventFormat(strings.Split(value, ","))
			if err != nil {
				return nil, nil, &ParseError{
					Format: FormatASS,
					Line:   lineNum,
					Reason: err.Error(),
				}
			}
		case "Dialogue":
			cue, err := parseDialogue(format, value)
			if err != nil {
				warnings = append(warnings, Warning{Line: lineNum, Reason: err.Error()})
				continue
			}
			cue.Index = len(cues) + 1
			cues = append(cues, cue)
		}
	}

	if !sawEvents {
		return nil, nil, &ParseError{
			Format: FormatASS,
			Reason: "missing [Events] section",
		}
	}

	return cues, warnings, nil
}

func parseDialogue(format assEventFormat, content string) (Cue, error) {
	parts := splitASSFields(strings.TrimSpace(content), format.columns)
	if len(parts) < format.columns {
		return Cue{}, fmt.Errorf(
			"expected %d fields, got %d",
			format.columns,
			len(parts),
		)
	}

	start, err := parseASSTimestamp(parts[format.startIdx])
	if err != nil {
		return Cue{}, fmt.Errorf("invalid start timestamp: %w", err)
	}
	end, err := parseASSTimestamp(parts[format.endIdx])
	if err != nil {
		return Cue{}, fmt.Errorf("invalid end timestamp: %w", err)
	}

	text := assTextReplacer.Replace(stripOverrideTags(parts[format.textIdx]))
	return newCue(start, end, joinLines(strings.Split(text, "\n")))
}

// splitASSFields splits on the first numFields-1 commas; the last field keeps
// any remaining commas since dialogue text may contain them.
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			return parts
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}

	return append(parts, remaining)
}

func parseASSTimestamp(ts string) (time.Duration, error) {
	ts = strings.TrimSpace(ts)
	matches := assTimestampRegex.FindStringSubmatch(ts)
	if matches == nil {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	return parseClockParts(matches[1], matches[2], matches[3], matches[4])
}
