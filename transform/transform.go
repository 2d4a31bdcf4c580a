// Package transform re-harmonizes a whole performance: one key per track,
// then every note moved from the source scale to the target scale.
package transform

import (
	"github.com/colortelevision/midi-scale-conv/key"
	"github.com/colortelevision/midi-scale-conv/mapper"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TrackReport describes what happened to one track. Tracks without notes
// are copied through untouched and have HasKey false.
type TrackReport struct {
	Index    int
	Name     string
	NumNotes int
	Key      model.Key
	HasKey   bool
}

func (r TrackReport) KeyName() string {
	if !r.HasKey {
		return ""
	}
	return model.PitchClassName(r.Key)
}

// DetectKeys runs key detection on each track independently.
func DetectKeys(perf model.Performance) []TrackReport {
	reports := make([]TrackReport, len(perf.Tracks))
	for i, track := range perf.Tracks {
		reports[i] = TrackReport{Index: i, Name: track.Name, NumNotes: len(track.Notes)}
		if len(track.Notes) == 0 {
			continue
		}
		k, err := key.Detect(track.Pitches())
		if err != nil {
			// unreachable with notes present
			continue
		}
		reports[i].Key = k
		reports[i].HasKey = true
	}
	return reports
}

// PrimaryKey is the key of the first track that has notes.
func PrimaryKey(perf model.Performance) (model.Key, error) {
	for _, track := range perf.Tracks {
		if len(track.Notes) > 0 {
			return key.Detect(track.Pitches())
		}
	}
	return 0, key.ErrNoNotes
}

// Track returns a copy of track with every pitch mapped in the given key.
// Time, duration, velocity, channel and metadata are copied by index.
func Track(track model.Track, source, target model.ScalePattern, k model.Key) (model.Track, error) {
	pitches, err := mapper.Transform(track.Pitches(), source, target, k)
	if err != nil {
		return model.Track{}, err
	}
	res := model.Track{
		Name:       track.Name,
		Instrument: track.Instrument,
		Notes:      make([]model.NoteEvent, len(track.Notes)),
	}
	for i, note := range track.Notes {
		note.Pitch = pitches[i]
		res.Notes[i] = note
	}
	return res, nil
}

// Performance transforms every track with its own detected key. Tracks
// without notes are passed through with their metadata. Both patterns are
// validated before any track is touched; on error nothing is returned.
func Performance(perf model.Performance, source, target model.ScalePattern) (model.Performance, []TrackReport, error) {
	if err := scale.Validate(source); err != nil {
		return model.Performance{}, nil, errors.Wrap(err, "source scale")
	}
	if err := scale.Validate(target); err != nil {
		return model.Performance{}, nil, errors.Wrap(err, "target scale")
	}

	reports := DetectKeys(perf)
	res := model.Performance{BPM: perf.BPM, Tracks: make([]model.Track, len(perf.Tracks))}
	for i, track := range perf.Tracks {
		report := reports[i]
		if !report.HasKey {
			res.Tracks[i] = model.Track{Name: track.Name, Instrument: track.Instrument, Notes: []model.NoteEvent{}}
			continue
		}
		logrus.WithFields(logrus.Fields{
			"track": i,
			"name":  track.Name,
			"notes": report.NumNotes,
		}).Debugf("Detected key: %s", report.KeyName())

		transformed, err := Track(track, source, target, report.Key)
		if err != nil {
			return model.Performance{}, nil, errors.Wrapf(err, "track %d", i)
		}
		res.Tracks[i] = transformed
	}
	return res, reports, nil
}

// ByName looks both scales up in the catalog and transforms perf.
func ByName(perf model.Performance, sourceName, targetName string) (model.Performance, []TrackReport, error) {
	source, err := scale.Find(sourceName)
	if err != nil {
		return model.Performance{}, nil, err
	}
	target, err := scale.Find(targetName)
	if err != nil {
		return model.Performance{}, nil, err
	}
	return Performance(perf, source.Pattern, target.Pattern)
}
