package mapper

import (
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/colortelevision/midi-scale-conv/util"
	"github.com/pkg/errors"
)

var ErrKeyOutOfRange = errors.New("key out of range")

// Transform maps every pitch from source to target, scale degree for scale
// degree, relative to key. The result has the same length and order as
// pitches and every pitch keeps its octave.
func Transform(pitches []model.Pitch, source, target model.ScalePattern, key model.Key) ([]model.Pitch, error) {
	if err := check(source, target, key); err != nil {
		return nil, err
	}
	res := make([]model.Pitch, len(pitches))
	for i, p := range pitches {
		res[i] = mapPitch(p, source, target, key)
	}
	return res, nil
}

// MapPitch is Transform for a single pitch.
func MapPitch(p model.Pitch, source, target model.ScalePattern, key model.Key) (model.Pitch, error) {
	if err := check(source, target, key); err != nil {
		return 0, err
	}
	return mapPitch(p, source, target, key), nil
}

func check(source, target model.ScalePattern, key model.Key) error {
	if err := scale.Validate(source); err != nil {
		return errors.Wrap(err, "source scale")
	}
	if err := scale.Validate(target); err != nil {
		return errors.Wrap(err, "target scale")
	}
	if key < 0 || key > 11 {
		return errors.Wrapf(ErrKeyOutOfRange, "%d", key)
	}
	return nil
}

func mapPitch(p model.Pitch, source, target model.ScalePattern, key model.Key) model.Pitch {
	octave := model.OctaveOf(p)
	relative := (model.ClassOf(p) - key + 12) % 12

	degree := indexOf(source, relative)
	if degree < 0 {
		degree = nearestDegree(source, relative)
	}
	// a target shorter than the source folds degrees back onto its start
	pc := (target[degree%len(target)] + key) % 12
	return pc + octave*12
}

func indexOf(pattern model.ScalePattern, pc model.PitchClass) int {
	for i, v := range pattern {
		if v == pc {
			return i
		}
	}
	return -1
}

// nearestDegree scans from degree 0 and keeps the first degree at the
// smallest circular distance, so ties go to the lower degree.
func nearestDegree(pattern model.ScalePattern, pc model.PitchClass) int {
	best, bestDist := 0, 13
	for i, v := range pattern {
		d := circularDistance(pc, v)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// circularDistance is the shorter way around the octave, at most 6.
func circularDistance(a, b model.PitchClass) int {
	forward := util.FloorMod(a-b, 12)
	return util.Min(forward, util.Abs(forward-12))
}
