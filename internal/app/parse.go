package app

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// parseRelevanceText parses pasted "token,relevance" (or whitespace
// separated) lines into parallel slices, skipping blank lines.
func parseRelevanceText(text string) ([]string, []float64, error) {
	var tokens []string
	var relevances []float64
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		token, relText, ok := splitRelevanceLine(line)
		if !ok {
			return nil, nil, fmt.Errorf("line %d: expected \"token,relevance\", got %q", lineNo, line)
		}
		rel, err := strconv.ParseFloat(relText, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: relevance %q: %w", lineNo, relText, err)
		}
		tokens = append(tokens, token)
		relevances = append(relevances, rel)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan input: %w", err)
	}
	return tokens, relevances, nil
}

// splitRelevanceLine splits on the last comma or, failing that, the last
// whitespace run, so tokens containing commas still parse.
func splitRelevanceLine(line string) (string, string, bool) {
	if i := strings.LastIndex(line, ","); i >= 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	rel := fields[len(fields)-1]
	token := strings.TrimSpace(strings.TrimSuffix(line, rel))
	return token, rel, true
}
