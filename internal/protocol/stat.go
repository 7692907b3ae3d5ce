package protocol

import (
	"math"
	"strconv"

	"github.com/wagiedev/mms-sdk-go/internal/errors"
)

// StatQuery names a statistic kept by the simulator.
type StatQuery string

const (
	TotalDistance               StatQuery = "total-distance"
	TotalTurns                  StatQuery = "total-turns"
	BestRunDistance             StatQuery = "best-run-distance"
	BestRunTurns                StatQuery = "best-run-turns"
	CurrentRunDistance          StatQuery = "current-run-distance"
	CurrentRunTurns             StatQuery = "current-run-turns"
	TotalEffectiveDistance      StatQuery = "total-effective-distance"
	BestRunEffectiveDistance    StatQuery = "best-run-effective-distance"
	CurrentRunEffectiveDistance StatQuery = "current-run-effective-distance"
	Score                       StatQuery = "score"
)

// StatQueries returns every stat the simulator documents.
func StatQueries() []StatQuery {
	return []StatQuery{
		TotalDistance,
		TotalTurns,
		BestRunDistance,
		BestRunTurns,
		CurrentRunDistance,
		CurrentRunTurns,
		TotalEffectiveDistance,
		BestRunEffectiveDistance,
		CurrentRunEffectiveDistance,
		Score,
	}
}

// IsFractional reports whether the stat is reported as a decimal number
// rather than an integer count.
func (q StatQuery) IsFractional() bool {
	switch q {
	case TotalEffectiveDistance, BestRunEffectiveDistance, CurrentRunEffectiveDistance, Score:
		return true
	default:
		return false
	}
}

// NoValue is reported by the simulator for stats that have no value yet,
// such as best-run stats before the first run finishes.
const NoValue = -1

// Stat is a decoded statistic.
type Stat struct {
	Query StatQuery
	Value float64
}

// Int returns the value of a counter stat. ok is false when the value has a
// fractional part, as effective distances and the score usually do; read
// Value for those.
func (s Stat) Int() (n int, ok bool) {
	if s.Value != math.Trunc(s.Value) {
		return 0, false
	}

	return int(s.Value), true
}

// HasValue reports whether the simulator had a value for the stat.
func (s Stat) HasValue() bool {
	return s.Value != NoValue
}

// ParseStat decodes a stat payload. Counters must be integers; effective
// distances and the score may be fractional.
func ParseStat(q StatQuery, payload []byte) (Stat, error) {
	text := string(payload)

	if q.IsFractional() {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Stat{}, &errors.ProtocolError{Verb: VerbGetStat, Expected: "decimal number", Response: text, Err: err}
		}

		return Stat{Query: q, Value: v}, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return Stat{}, &errors.ProtocolError{Verb: VerbGetStat, Expected: "integer", Response: text, Err: err}
	}

	return Stat{Query: q, Value: float64(n)}, nil
}
