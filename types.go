package mms

import "github.com/wagiedev/mms-sdk-go/internal/protocol"

// ===== Walls =====

// Direction is the side of a cell a wall sits on.
type Direction = protocol.Direction

const (
	North = protocol.North
	East  = protocol.East
	South = protocol.South
	West  = protocol.West
)

// ParseDirection accepts a wire letter ("n") or a name ("north").
var ParseDirection = protocol.ParseDirection

// ===== Colors =====

// Color is a cell color from the simulator palette.
type Color = protocol.Color

const (
	Black      = protocol.Black
	Blue       = protocol.Blue
	Gray       = protocol.Gray
	Cyan       = protocol.Cyan
	Green      = protocol.Green
	Orange     = protocol.Orange
	Red        = protocol.Red
	White      = protocol.White
	Yellow     = protocol.Yellow
	DarkBlue   = protocol.DarkBlue
	DarkCyan   = protocol.DarkCyan
	DarkGray   = protocol.DarkGray
	DarkGreen  = protocol.DarkGreen
	DarkRed    = protocol.DarkRed
	DarkYellow = protocol.DarkYellow
)

// ParseColor accepts a canonical name ("darkgreen") or a wire letter ("G").
var ParseColor = protocol.ParseColor

// Colors returns the whole palette.
var Colors = protocol.Colors

// ===== Statistics =====

// StatQuery names a statistic kept by the simulator.
type StatQuery = protocol.StatQuery

const (
	TotalDistance               = protocol.TotalDistance
	TotalTurns                  = protocol.TotalTurns
	BestRunDistance             = protocol.BestRunDistance
	BestRunTurns                = protocol.BestRunTurns
	CurrentRunDistance          = protocol.CurrentRunDistance
	CurrentRunTurns             = protocol.CurrentRunTurns
	TotalEffectiveDistance      = protocol.TotalEffectiveDistance
	BestRunEffectiveDistance    = protocol.BestRunEffectiveDistance
	CurrentRunEffectiveDistance = protocol.CurrentRunEffectiveDistance
	Score                       = protocol.Score
)

// StatQueries returns every documented statistic.
var StatQueries = protocol.StatQueries

// Stat is a decoded statistic. A value of -1 means the simulator has none yet.
type Stat = protocol.Stat

// ByteBuffer is a stat payload owned by the caller. Release it exactly once.
type ByteBuffer = protocol.ByteBuffer
