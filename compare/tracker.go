package compare

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Tracker is the capability every compared tracker provides: one-time
// initialization against a frame and region, then per-frame box updates.
// Satisfied directly by the OpenCV tracker bindings.
type Tracker interface {
	Init(img gocv.Mat, boundingBox image.Rectangle) bool
	Update(img gocv.Mat) (image.Rectangle, bool)
	Close() error
}

// Entry pairs a tracker instance with its display name and color. Entries
// live for the whole run; the tracker's internal model is opaque to us.
type Entry struct {
	Name    string
	Tracker Tracker
	Color   color.RGBA
}

// Result is one tracker's estimate for a single frame.
type Result struct {
	Name  string
	Box   image.Rectangle
	Color color.RGBA
}

// DefaultEntries builds the three compared trackers with their traditional
// demo colors.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "KCF", Tracker: contrib.NewTrackerKCF(), Color: color.RGBA{R: 255, A: 255}},
		{Name: "CSRT", Tracker: contrib.NewTrackerCSRT(), Color: color.RGBA{B: 255, A: 255}},
		{Name: "MIL", Tracker: gocv.NewTrackerMIL(), Color: color.RGBA{G: 255, B: 255, A: 255}},
	}
}

// EntriesFromNames builds tracker entries for a comma-separated selection out
// of kcf, csrt and mil.
func EntriesFromNames(names string) ([]Entry, error) {
	available := DefaultEntries()
	byName := make(map[string]Entry, len(available))
	for _, e := range available {
		byName[strings.ToLower(e.Name)] = e
	}

	var picked []Entry
	seen := make(map[string]bool)
	for _, raw := range strings.Split(names, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		entry, ok := byName[name]
		if !ok {
			closeEntries(available)
			return nil, fmt.Errorf("unknown tracker %q (available: kcf, csrt, mil)", raw)
		}
		seen[name] = true
		picked = append(picked, entry)
	}
	if len(picked) == 0 {
		closeEntries(available)
		return nil, fmt.Errorf("no trackers selected from %q", names)
	}

	// release the trackers that were built but not picked
	for lower, e := range byName {
		if !seen[lower] {
			e.Tracker.Close()
		}
	}
	return picked, nil
}

// updateAll asks each tracker for an updated box. Failed trackers are
// silently omitted from the frame's results.
func updateAll(entries []Entry, frame gocv.Mat) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		box, ok := e.Tracker.Update(frame)
		if !ok {
			continue
		}
		results = append(results, Result{Name: e.Name, Box: box, Color: e.Color})
	}
	return results
}

func closeEntries(entries []Entry) {
	for _, e := range entries {
		e.Tracker.Close()
	}
}
