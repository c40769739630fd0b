package price

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDataUnavailable is returned when no date in the requested window
	// produced any price data; there is no valid empty-series outcome.
	ErrDataUnavailable = errors.New("no price data available for any requested date")

	// ErrCycleConflict is returned by Store.UpdateLatest when the stored
	// newest board belongs to a different cycle than the incoming one,
	// meaning a rebuild landed in between. The caller's update is stale
	// and must not overwrite the newer board.
	ErrCycleConflict = errors.New("stored board belongs to a different cycle")
)

// HourPrice is one hour of the spot-price timeline. Start marks the beginning
// of a one-hour interval; Price is the tax-inclusive amount in cents per kWh.
type HourPrice struct {
	Start time.Time `json:"start"`
	Price float64   `json:"price"`
}

// Series is an ordered sequence of HourPrice, strictly increasing by Start
// with no duplicate start times. It may span more than one calendar date and
// is rebuilt from scratch on every cycle, never mutated in place.
type Series []HourPrice

// RawRecord is a single hourly price as served by the price API,
// before tax is applied.
type RawRecord struct {
	Start time.Time `json:"start"`
	Value float64   `json:"value"`
}

// DayDocument is the raw per-day document fetched from storage. One document
// covers one provider-local calendar date.
type DayDocument struct {
	Date    string      `json:"date"`
	Records []RawRecord `json:"prices"`
}

// Fetcher abstracts the external storage read for one calendar date.
// Date is formatted as 2006-01-02 in the provider's local calendar.
type Fetcher interface {
	Name() string
	FetchDay(ctx context.Context, date string) (*DayDocument, error)
}

// RefreshDecision tells the caller how long the current board may be treated
// as fresh. SecondsRemaining is advisory: consumers that serve a slightly
// stale board beyond this window are still correct, since price data changes
// at most once per day.
type RefreshDecision struct {
	ValidUntil       time.Time `json:"validUntil"`
	SecondsRemaining int       `json:"secondsRemaining"`
}

// AnnotationKind discriminates the marker types derived from a Series.
type AnnotationKind string

const (
	KindCurrentHourBox  AnnotationKind = "currentHourBox"
	KindDayBoundaryLine AnnotationKind = "dayBoundaryLine"
	KindWeekdayLabel    AnnotationKind = "weekdayLabel"
)

// Annotation is a style-neutral marker positioned against Series indexes.
// XMin/XMax are in index units; for lines and labels they coincide.
// The presentation layer owns all visual styling.
type Annotation struct {
	ID    string         `json:"id"`
	Kind  AnnotationKind `json:"kind"`
	Index int            `json:"index"`
	XMin  float64        `json:"xMin"`
	XMax  float64        `json:"xMax"`
	Label string         `json:"label,omitempty"`
}

// Board is the full assembled result of one cycle, handed immutable to the
// presentation layer. CurrentIndex is -1 when "now" falls outside the series.
type Board struct {
	CycleID      string                `json:"cycleId"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	Series       Series                `json:"series"`
	CurrentIndex int                   `json:"currentIndex"`
	Annotations  map[string]Annotation `json:"annotations"`
	Refresh      RefreshDecision       `json:"refresh"`
}

// Store is the contract the in-memory snapshot store (and any future
// persistent store) must satisfy. UpdateLatest replaces the newest board
// only when b belongs to the same cycle, failing with ErrCycleConflict
// otherwise.
type Store interface {
	SaveBoard(b Board)
	UpdateLatest(b Board) error
	Latest() (Board, error)
	Range(from, to time.Time) ([]Board, error)
}
