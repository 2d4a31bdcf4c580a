// Package key estimates the tonal center of a run of pitches.
//
// The estimate is a heuristic: a pitch-class histogram in which boundary
// notes count extra, scored against the major scale of each of the 12
// candidate tonics with bonuses for the tonic and the dominant.
package key

import (
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/pkg/errors"
)

var ErrNoNotes = errors.New("no notes to detect a key from")

const (
	boundaryBonus = 2
	inScaleWeight = 2
	tonicBonus    = 3
	dominantBonus = 2
)

// Weights builds the pitch-class histogram. Every pitch adds 1 to its class.
// A pitch equal to the first pitch adds another 2, and so does a pitch equal
// to the last one; when first == last both apply. The comparison is on the
// raw pitch, so the same class in another octave gets no boundary bonus.
func Weights(pitches []model.Pitch) [12]int {
	var weights [12]int
	if len(pitches) == 0 {
		return weights
	}
	first, last := pitches[0], pitches[len(pitches)-1]
	for _, p := range pitches {
		pc := model.ClassOf(p)
		weights[pc]++
		if p == first {
			weights[pc] += boundaryBonus
		}
		if p == last {
			weights[pc] += boundaryBonus
		}
	}
	return weights
}

// Scores returns the score of every candidate key for the given histogram.
func Scores(weights [12]int) [12]int {
	var inMajor [12]bool
	for _, degree := range scale.Major {
		inMajor[degree] = true
	}

	var scores [12]int
	for k := 0; k < 12; k++ {
		score := 0
		for i := 0; i < 12; i++ {
			degree := (i - k + 12) % 12
			if inMajor[degree] {
				score += weights[i] * inScaleWeight
			} else {
				score += weights[i]
			}
		}
		score += weights[k] * tonicBonus
		score += weights[(k+7)%12] * dominantBonus
		scores[k] = score
	}
	return scores
}

// Detect returns the highest scoring key. Ties go to the lowest pitch class.
func Detect(pitches []model.Pitch) (model.Key, error) {
	if len(pitches) == 0 {
		return 0, ErrNoNotes
	}

	scores := Scores(Weights(pitches))
	best := 0
	for k := 1; k < 12; k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return best, nil
}
