package scale

import (
	"strings"

	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/pkg/errors"
)

var (
	ErrInvalidScalePattern = errors.New("invalid scale pattern")
	ErrUnknownScale        = errors.New("unknown scale")
)

type Scale struct {
	Name    string
	Pattern model.ScalePattern
	Example string
}

// Major is the diatonic pattern the key detector scores against.
var Major = model.ScalePattern{0, 2, 4, 5, 7, 9, 11}

var Catalog = []Scale{
	{Name: "Ionian (Major)", Pattern: Major, Example: "C D E F G A B C"},
	{Name: "Aeolian (Natural Minor)", Pattern: model.ScalePattern{0, 2, 3, 5, 7, 8, 10}, Example: "C D Eb F G Ab Bb C"},
	{Name: "Dorian", Pattern: model.ScalePattern{0, 2, 3, 5, 7, 9, 10}, Example: "C D Eb F G A Bb C"},
	{Name: "Phrygian", Pattern: model.ScalePattern{0, 1, 3, 5, 7, 8, 10}, Example: "C Db Eb F G Ab Bb C"},
	{Name: "Locrian", Pattern: model.ScalePattern{0, 1, 3, 5, 6, 8, 10}, Example: "C Db Eb F Gb Ab Bb C"},
	{Name: "Harmonic Minor", Pattern: model.ScalePattern{0, 2, 3, 5, 7, 8, 11}, Example: "C D Eb F G Ab B C"},
	{Name: "Melodic Minor", Pattern: model.ScalePattern{0, 2, 3, 5, 7, 9, 11}, Example: "C D Eb F G A B C"},
	{Name: "Pentatonic", Pattern: model.ScalePattern{0, 2, 4, 7, 9}, Example: "C D E G A"},
	{Name: "Blues", Pattern: model.ScalePattern{0, 3, 5, 6, 7, 10}, Example: "C Eb F F# G Bb"},
	{Name: "Chromatic", Pattern: model.ScalePattern{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, Example: "C C# D D# E F F# G G# A A# B"},
}

// Slug turns "Aeolian (Natural Minor)" into "aeolian" and "Harmonic Minor"
// into "harmonic-minor".
func Slug(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Find looks a scale up by its full name, the part before the parenthesis,
// or its slug. Matching ignores case.
func Find(name string) (Scale, error) {
	wanted := strings.TrimSpace(name)
	for _, s := range Catalog {
		if strings.EqualFold(s.Name, wanted) || Slug(s.Name) == Slug(wanted) {
			return s, nil
		}
	}
	return Scale{}, errors.Wrapf(ErrUnknownScale, "%q", name)
}

// Validate rejects patterns the mapper cannot index: empty, longer than an
// octave, values outside [0, 11], or repeated pitch classes.
func Validate(pattern model.ScalePattern) error {
	if len(pattern) == 0 {
		return errors.Wrap(ErrInvalidScalePattern, "pattern is empty")
	}
	if len(pattern) > 12 {
		return errors.Wrapf(ErrInvalidScalePattern, "pattern has %d entries", len(pattern))
	}
	var seen [12]bool
	for i, pc := range pattern {
		if pc < 0 || pc > 11 {
			return errors.Wrapf(ErrInvalidScalePattern, "degree %d is %d, outside 0-11", i, pc)
		}
		if seen[pc] {
			return errors.Wrapf(ErrInvalidScalePattern, "pitch class %d repeated", pc)
		}
		seen[pc] = true
	}
	return nil
}
