package question

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLeadIns reads extra lead-in phrases from a file, one per line. Blank
// lines and lines starting with '#' are skipped. Phrases are lowercased;
// matching is case-insensitive either way.
func LoadLeadIns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lead-ins file: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lead-ins file: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("lead-ins file %s has no phrases", path)
	}
	return out, nil
}
