package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parse converts raw subtitle bytes into a cue sequence. FormatUnknown
// detects the format from the content. Parse has no side effects, so equal
// input always yields an equal Result.
func Parse(data []byte, format Format) (*Result, error) {
	text, err := decodeText(data, format)
	if err != nil {
		return nil, err
	}

	if format == FormatUnknown {
		format = sniffFormat(text)
		if format == FormatUnknown {
			return nil, &ParseError{
				Reason: "content is not SRT, VTT or ASS/SSA",
			}
		}
	}

	var (
		cues     []Cue
		warnings []Warning
	)
	switch format {
	case FormatSRT:
		cues, warnings, err = parseSRT(text)
	case FormatVTT:
		cues, warnings, err = parseVTT(text)
	case FormatASS:
		cues, warnings, err = parseASS(text)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	if len(cues) == 0 {
		return nil, emptyResultError(format, len(warnings))
	}

	return &Result{
		Format:   format,
		Cues:     NewSequence(cues),
		Warnings: warnings,
	}, nil
}

// LoadFile reads the whole file and parses it, taking the format from the
// extension or, failing that, from the content.
func LoadFile(path string) (*Result, error) {
	return LoadFileFormat(path, FormatUnknown)
}

// LoadFileFormat is LoadFile with an explicit format. FormatUnknown falls
// back to the extension.
func LoadFileFormat(path string, format Format) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	if format == FormatUnknown {
		format = FormatFromPath(path)
	}

	return Parse(data, format)
}

// subtitle format based on file extension
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatUnknown
	}
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}

func sniffFormat(text string) Format {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "WEBVTT") {
		return FormatVTT
	}

	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "[script info]") ||
		strings.Contains(lower, "\n[events]") ||
		strings.HasPrefix(lower, "[events]") {
		return FormatASS
	}

	if strings.Contains(text, "-->") {
		return FormatSRT
	}
	return FormatUnknown
}
