// Package timegrid maps a day's appointments onto a bounded visual grid.
// It is a pure function library: no storage, no clock, no side effects.
// Each staff member gets an independent column; placements are vertical
// percentages against a fixed daily window (e.g. 08:00–21:00).
package timegrid

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Window is the visible daily span in whole hours.
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultWindow covers 08:00–21:00, 13 hourly rows.
var DefaultWindow = Window{StartHour: 8, EndHour: 21}

// Hours returns the window size in hours.
func (w Window) Hours() float64 { return float64(w.EndHour - w.StartHour) }

// Entry is the minimal appointment data the grid needs.
type Entry struct {
	AppointmentID uuid.UUID
	StaffID       uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
}

// Placement positions one appointment rectangle. Offsets are percentages of
// the window height; entries outside the window produce offsets outside
// [0,100] and are clipped by the renderer, not here.
type Placement struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	Column        int       `json:"column"`
	TopOffsetPct  float64   `json:"top_offset_pct"`
	HeightPct     float64   `json:"height_pct"`
}

// Place computes grid placements for the given entries against the window.
// Columns are assigned per staff in order of each staff's earliest start
// time (ties broken by staff id for determinism). Entries for the same
// staff at overlapping times overlap visually — the grid performs no
// stacking; booking is expected to have rejected conflicts upstream.
func Place(entries []Entry, w Window) []Placement {
	if w.EndHour <= w.StartHour {
		w = DefaultWindow
	}

	columns := assignColumns(entries)

	placements := make([]Placement, 0, len(entries))
	for _, e := range entries {
		startFrac := hourFraction(e.StartTime)
		duration := e.EndTime.Sub(e.StartTime).Hours()

		placements = append(placements, Placement{
			AppointmentID: e.AppointmentID,
			StaffID:       e.StaffID,
			Column:        columns[e.StaffID],
			TopOffsetPct:  (startFrac - float64(w.StartHour)) / w.Hours() * 100,
			HeightPct:     duration / w.Hours() * 100,
		})
	}
	return placements
}

// assignColumns groups entries strictly by staff id and orders columns by
// each staff's earliest appointment.
func assignColumns(entries []Entry) map[uuid.UUID]int {
	earliest := make(map[uuid.UUID]time.Time)
	for _, e := range entries {
		if first, ok := earliest[e.StaffID]; !ok || e.StartTime.Before(first) {
			earliest[e.StaffID] = e.StartTime
		}
	}

	staffIDs := make([]uuid.UUID, 0, len(earliest))
	for id := range earliest {
		staffIDs = append(staffIDs, id)
	}
	sort.Slice(staffIDs, func(i, j int) bool {
		a, b := earliest[staffIDs[i]], earliest[staffIDs[j]]
		if a.Equal(b) {
			return staffIDs[i].String() < staffIDs[j].String()
		}
		return a.Before(b)
	})

	columns := make(map[uuid.UUID]int, len(staffIDs))
	for i, id := range staffIDs {
		columns[id] = i
	}
	return columns
}

// hourFraction converts a clock time to fractional hours (10:30 → 10.5).
func hourFraction(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// Overlaps reports whether two half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Shared by the booking conflict check.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
