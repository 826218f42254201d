package winimerge

import (
	"time"

	"github.com/WinMerge/winimerge/internal/scanline"
)

// OverlayMode selects how a neighbor pane is composited onto the current
// one during refresh.
type OverlayMode int

const (
	OverlayNone OverlayMode = iota
	OverlayXOR
	OverlayAlphaBlend
	OverlayAlphaBlendAnim
)

// WipeMode selects the split-screen wipe direction during refresh.
type WipeMode int

const (
	WipeNone WipeMode = iota
	WipeVertical
	WipeHorizontal
)

// InsertionDeletionMode selects the scanline direction used for
// insertion/deletion detection during preprocessing.
type InsertionDeletionMode int

const (
	InsertionDeletionNone InsertionDeletionMode = iota
	InsertionDeletionVertical
	InsertionDeletionHorizontal
)

// Clock supplies wall-clock time to animated-overlay and blink
// composition, so tests can hold it fixed (spec.md §5/§9).
type Clock interface {
	Now() time.Time
}

// realClock is the default Clock, backed by time.Now.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Settings holds every tunable of the comparison/merge pipeline. The zero
// value is not ready to use; construct with NewSettings.
type Settings struct {
	blockSize             int
	colorDistanceThreshold float64

	diffColor           Color
	diffDeletedColor    Color
	selDiffColor        Color
	selDiffDeletedColor Color
	diffColorAlpha      float64

	overlayMode  OverlayMode
	overlayAlpha float64

	wipeMode     WipeMode
	wipePosition int

	insertionDeletionMode InsertionDeletionMode
	diffAlgorithm         scanline.Algorithm

	showDifferences  bool
	blinkDifferences bool
	blinkIntervalMs  int

	overlayAnimIntervalMs int
	vectorImageZoomRatio  float32

	clock Clock
}

// NewSettings returns Settings populated with the source library's
// defaults.
func NewSettings() *Settings {
	return &Settings{
		blockSize:             8,
		colorDistanceThreshold: 0,
		diffColor:              RGBA(255, 255, 0, 255),
		diffDeletedColor:       RGBA(200, 200, 0, 255),
		selDiffColor:           RGBA(0, 200, 255, 255),
		selDiffDeletedColor:    RGBA(0, 150, 200, 255),
		diffColorAlpha:         0.7,
		overlayMode:            OverlayNone,
		overlayAlpha:           0.3,
		wipeMode:               WipeNone,
		wipePosition:           0,
		insertionDeletionMode:  InsertionDeletionNone,
		diffAlgorithm:          scanline.Myers,
		showDifferences:        true,
		blinkDifferences:       false,
		blinkIntervalMs:        800,
		overlayAnimIntervalMs:  1000,
		vectorImageZoomRatio:   1.0,
		clock:                  realClock{},
	}
}

func (s *Settings) BlockSize() int { return s.blockSize }
func (s *Settings) SetBlockSize(v int) {
	if v < 1 {
		v = 1
	}
	s.blockSize = v
}

func (s *Settings) ColorDistanceThreshold() float64 { return s.colorDistanceThreshold }
func (s *Settings) SetColorDistanceThreshold(v float64) {
	if v < 0 {
		v = 0
	}
	s.colorDistanceThreshold = v
}

func (s *Settings) DiffColor() Color            { return s.diffColor }
func (s *Settings) SetDiffColor(c Color)        { s.diffColor = c }
func (s *Settings) DiffDeletedColor() Color     { return s.diffDeletedColor }
func (s *Settings) SetDiffDeletedColor(c Color) { s.diffDeletedColor = c }
func (s *Settings) SelDiffColor() Color         { return s.selDiffColor }
func (s *Settings) SetSelDiffColor(c Color)     { s.selDiffColor = c }
func (s *Settings) SelDiffDeletedColor() Color  { return s.selDiffDeletedColor }

// SetSelDiffDeletedColor writes to selDiffDeletedColor. The source library
// writes this setter's argument into m_selDiffColor instead of
// m_selDiffDeletedColor; treated as a bug per spec.md §9 and fixed here.
func (s *Settings) SetSelDiffDeletedColor(c Color) { s.selDiffDeletedColor = c }

func (s *Settings) DiffColorAlpha() float64 { return s.diffColorAlpha }
func (s *Settings) SetDiffColorAlpha(v float64) {
	s.diffColorAlpha = clampFloat(v, 0, 1)
}

func (s *Settings) OverlayMode() OverlayMode     { return s.overlayMode }
func (s *Settings) SetOverlayMode(m OverlayMode) { s.overlayMode = m }
func (s *Settings) OverlayAlpha() float64        { return s.overlayAlpha }
func (s *Settings) SetOverlayAlpha(v float64)    { s.overlayAlpha = clampFloat(v, 0, 1) }

func (s *Settings) WipeMode() WipeMode     { return s.wipeMode }
func (s *Settings) SetWipeMode(m WipeMode) { s.wipeMode = m }
func (s *Settings) WipePosition() int      { return s.wipePosition }
func (s *Settings) SetWipePosition(v int)  { s.wipePosition = v }

func (s *Settings) InsertionDeletionMode() InsertionDeletionMode { return s.insertionDeletionMode }
func (s *Settings) SetInsertionDeletionMode(m InsertionDeletionMode) {
	s.insertionDeletionMode = m
}

func (s *Settings) DiffAlgorithm() scanline.Algorithm { return s.diffAlgorithm }
func (s *Settings) SetDiffAlgorithm(a scanline.Algorithm) { s.diffAlgorithm = a }

func (s *Settings) ShowDifferences() bool     { return s.showDifferences }
func (s *Settings) SetShowDifferences(v bool) { s.showDifferences = v }
func (s *Settings) BlinkDifferences() bool    { return s.blinkDifferences }
func (s *Settings) SetBlinkDifferences(v bool) { s.blinkDifferences = v }
func (s *Settings) BlinkIntervalMs() int      { return s.blinkIntervalMs }

func (s *Settings) OverlayAnimIntervalMs() int { return s.overlayAnimIntervalMs }
func (s *Settings) VectorImageZoomRatio() float32 { return s.vectorImageZoomRatio }
func (s *Settings) SetVectorImageZoomRatio(v float32) { s.vectorImageZoomRatio = v }

// SetClock installs a custom wall-clock source, for deterministic tests of
// blink/animated-overlay composition.
func (s *Settings) SetClock(c Clock) {
	if c == nil {
		c = realClock{}
	}
	s.clock = c
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
