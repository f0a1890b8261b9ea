// Command tlediag parses a local three-line-element file and runs a short
// propagation over the first few records, printing a summary. Useful for
// checking a downloaded catalog before pointing the pipeline at it.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/propagation"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tlediag <elements.txt>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Println("ERROR reading element file:", err)
		os.Exit(1)
	}

	records, err := tle.Parse(bytes.NewReader(data), 1000, logger)
	if err != nil {
		fmt.Println("ERROR parsing elements:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d element records\n", len(records))
	if len(records) == 0 {
		return
	}

	for i, rec := range records {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(records)-10)
			break
		}
		fmt.Printf("  %s (NORAD %d) epoch %v\n", rec.Name, rec.NoradID, rec.Epoch.Format(time.RFC3339))
	}

	// Short propagation sanity run near the first record's epoch.
	n := len(records)
	if n > 3 {
		n = 3
	}
	grid, err := timegrid.New(records[0].Epoch, 0.01, 10)
	if err != nil {
		fmt.Println("ERROR building grid:", err)
		os.Exit(1)
	}

	prop := propagation.NewSGP4()
	for _, rec := range records[:n] {
		series, err := prop.Positions(rec, grid)
		if err != nil {
			fmt.Printf("  NORAD %d: ERROR %v\n", rec.NoradID, err)
			continue
		}
		x, y, z := series.At(0)
		mag := math.Sqrt(x*x + y*y + z*z)
		fmt.Printf("  NORAD %d: first position [%.1f, %.1f, %.1f] km (|r|=%.1f km)\n",
			rec.NoradID, x, y, z, mag)
	}
}
