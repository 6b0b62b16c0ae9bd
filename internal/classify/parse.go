package classify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The oracle answers in free text. These helpers are the only place raw
// responses are interpreted; everything they return is either a parsed
// value or an explicit error the passes turn into their fallback.

var (
	arrayExpr  = regexp.MustCompile(`(?s)\[.*\]`)
	markerExpr = regexp.MustCompile(`\[(\d+)\]`)
)

// verdict is one relevance judgment, keyed by 1-based batch position.
// The score decodes as float64: oracles occasionally answer 8.5 and a
// fractional score must not invalidate the whole batch.
type verdict struct {
	ID       int     `json:"id"`
	Score    float64 `json:"score"`
	Relevant bool    `json:"relevant"`
}

// sentimentVerdict is one sentiment label, keyed by 1-based batch position.
type sentimentVerdict struct {
	ID        int    `json:"id"`
	Sentiment string `json:"sentiment"`
}

func parseVerdicts(raw string) ([]verdict, error) {
	body := arrayExpr.FindString(raw)
	if body == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var verdicts []verdict
	if err := json.Unmarshal([]byte(body), &verdicts); err != nil {
		return nil, fmt.Errorf("decode verdicts: %w", err)
	}
	return verdicts, nil
}

func parseSentiments(raw string) ([]sentimentVerdict, error) {
	body := arrayExpr.FindString(raw)
	if body == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var verdicts []sentimentVerdict
	if err := json.Unmarshal([]byte(body), &verdicts); err != nil {
		return nil, fmt.Errorf("decode sentiments: %w", err)
	}
	return verdicts, nil
}

// splitSections partitions summary output on its [n] positional markers,
// mapping each 1-based position to the text block that follows its marker.
func splitSections(raw string) map[int]string {
	sections := make(map[int]string)

	matches := markerExpr.FindAllStringSubmatchIndex(raw, -1)
	for i, match := range matches {
		idx, err := strconv.Atoi(raw[match[2]:match[3]])
		if err != nil {
			continue
		}

		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		if block := strings.TrimSpace(raw[match[1]:end]); block != "" {
			sections[idx] = block
		}
	}

	return sections
}

// parseBullets splits a summary block into plain bullet strings, stripping
// bullet glyphs and empty lines.
func parseBullets(block string) []string {
	var bullets []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "•")
		line = strings.TrimPrefix(line, "-")
		line = strings.TrimPrefix(line, "*")
		if line = strings.TrimSpace(line); line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
