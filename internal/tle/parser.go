package tle

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Parse reads 3-line element sets from r and returns up to max records,
// preserving input order. Lines are read in groups of three: name line,
// element line 1, element line 2. A group whose element lines do not carry
// the "1 " / "2 " prefixes is skipped with a warning; trailing partial
// groups are dropped silently. Malformed input is never fatal.
func Parse(r io.Reader, max int, logger *slog.Logger) ([]ElementRecord, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading element data: %w", err)
	}

	var records []ElementRecord
	for i := 0; i+2 < len(lines) && len(records) < max; i += 3 {
		name := lines[i]
		line1 := lines[i+1]
		line2 := lines[i+2]

		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			logger.Warn("skipping malformed element group", "line_index", i, "name", name)
			continue
		}

		if len(line1) < 32 {
			logger.Warn("skipping element group with short line1", "name", name)
			continue
		}

		// NORAD catalog number lives in line1 cols 3-7 (0-indexed 2..7).
		noradStr := strings.TrimSpace(line1[2:7])
		noradID, err := strconv.Atoi(noradStr)
		if err != nil {
			logger.Warn("skipping element group with invalid NORAD ID", "norad_str", noradStr, "name", name)
			continue
		}

		// Epoch lives in line1 cols 19-32 (0-indexed 18..32).
		epochStr := strings.TrimSpace(line1[18:32])
		epoch, err := parseEpoch(epochStr)
		if err != nil {
			logger.Warn("skipping element group with invalid epoch", "epoch_str", epochStr, "name", name, "error", err)
			continue
		}

		records = append(records, ElementRecord{
			NoradID: noradID,
			Name:    name,
			Epoch:   epoch,
			Line1:   line1,
			Line2:   line2,
		})
	}

	return records, nil
}

// parseEpoch converts an element epoch string in YYDDD.DDDDDDDD format to
// time.Time. Year 00-56 maps to the 2000s, 57-99 to the 1900s.
func parseEpoch(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch string too short: %q", s)
	}

	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch year %q: %w", s[:2], err)
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}

	dayOfYear, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch day %q: %w", s[2:], err)
	}

	// dayOfYear is 1-based: day 1 = Jan 1.
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour))), nil
}
