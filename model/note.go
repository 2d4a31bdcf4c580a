package model

import (
	"strconv"

	"github.com/colortelevision/midi-scale-conv/util"
)

// PitchClass is a semitone within an octave, 0 = C.
type PitchClass = int

// Pitch is a MIDI note number.
type Pitch = int

// Key is the detected tonal center of a track, always in [0, 11].
type Key = PitchClass

// ScalePattern lists pitch classes relative to a tonic of 0. Order is
// significant: the index of an entry is its scale degree.
type ScalePattern = []PitchClass

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func ClassOf(p Pitch) PitchClass {
	return util.FloorMod(p, 12)
}

// OctaveOf is p div 12. It is not the scientific octave number used by NoteName.
func OctaveOf(p Pitch) int {
	return util.FloorDiv(p, 12)
}

// PitchClassName returns the sharp spelling of a pitch class ("C#").
func PitchClassName(pc PitchClass) string {
	return noteNames[util.FloorMod(pc, 12)]
}

// NoteName returns the pitch class name and octave, with 60 = C4.
func NoteName(p Pitch) string {
	return PitchClassName(p) + strconv.Itoa(OctaveOf(p)-1)
}

type NoteEvent struct {
	Pitch Pitch
	// seconds from the start of the performance
	Time     float64
	Duration float64
	Velocity uint8
	Channel  uint8
}

// Track is never inspected past its notes; Name and Instrument are forwarded.
type Track struct {
	Name       string
	Instrument string
	Notes      []NoteEvent
}

// Pitches returns the pitch of every note, in order.
func (t Track) Pitches() []Pitch {
	res := make([]Pitch, len(t.Notes))
	for i, n := range t.Notes {
		res[i] = n.Pitch
	}
	return res
}

type Performance struct {
	BPM    float64
	Tracks []Track
}
