package transform

import (
	"testing"

	"github.com/colortelevision/midi-scale-conv/key"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var (
	ionian  = model.ScalePattern{0, 2, 4, 5, 7, 9, 11}
	aeolian = model.ScalePattern{0, 2, 3, 5, 7, 8, 10}
)

func notes(pitches ...model.Pitch) []model.NoteEvent {
	var res []model.NoteEvent
	for i, p := range pitches {
		res = append(res, model.NoteEvent{
			Pitch:    p,
			Time:     float64(i) * 0.5,
			Duration: 0.25 + float64(i)*0.1,
			Velocity: uint8(60 + i),
			Channel:  uint8(i % 2),
		})
	}
	return res
}

func testPerformance() model.Performance {
	return model.Performance{
		BPM: 96,
		Tracks: []model.Track{
			{Name: "conductor"},
			{Name: "melody", Instrument: "piano", Notes: notes(60, 64, 67, 72)},
			// D major scale, first and last on D
			{Name: "bass", Instrument: "bass", Notes: notes(50, 52, 54, 55, 57, 59, 61, 62)},
		},
	}
}

func TestPreservesEverythingButPitch(t *testing.T) {
	perf := testPerformance()
	res, _, err := Performance(perf, ionian, aeolian)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(perf.BPM, res.BPM)
	assert.Len(res.Tracks, len(perf.Tracks))
	for i, track := range perf.Tracks {
		got := res.Tracks[i]
		assert.Equal(track.Name, got.Name)
		assert.Equal(track.Instrument, got.Instrument)
		assert.Len(got.Notes, len(track.Notes))
		for j, note := range track.Notes {
			assert.Equal(note.Time, got.Notes[j].Time)
			assert.Equal(note.Duration, got.Notes[j].Duration)
			assert.Equal(note.Velocity, got.Notes[j].Velocity)
			assert.Equal(note.Channel, got.Notes[j].Channel)
			assert.Equal(model.OctaveOf(note.Pitch), model.OctaveOf(got.Notes[j].Pitch))
		}
	}
}

func TestKeyIsDetectedPerTrack(t *testing.T) {
	res, reports, err := Performance(testPerformance(), ionian, aeolian)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(reports, 3)

	assert.False(reports[0].HasKey)
	assert.Equal("", reports[0].KeyName())

	assert.True(reports[1].HasKey)
	assert.Equal(0, reports[1].Key)
	assert.Equal("C", reports[1].KeyName())

	assert.True(reports[2].HasKey)
	assert.Equal(2, reports[2].Key)
	assert.Equal("D", reports[2].KeyName())

	assert.Equal([]model.Pitch{60, 63, 67, 72}, res.Tracks[1].Pitches())
	// D natural minor
	assert.Equal([]model.Pitch{50, 52, 53, 55, 57, 58, 60, 62}, res.Tracks[2].Pitches())
}

func TestEmptyTrackPassesThrough(t *testing.T) {
	res, reports, err := Performance(testPerformance(), ionian, aeolian)
	assert.NoError(t, err)
	assert.Equal(t, "conductor", res.Tracks[0].Name)
	assert.Empty(t, res.Tracks[0].Notes)
	assert.Equal(t, 0, reports[0].NumNotes)
}

func TestDoesNotMutateInput(t *testing.T) {
	perf := testPerformance()
	_, _, err := Performance(perf, ionian, aeolian)
	assert.NoError(t, err)
	assert.Equal(t, []model.Pitch{60, 64, 67, 72}, perf.Tracks[1].Pitches())
}

func TestInvalidPatternFailsWholeCall(t *testing.T) {
	res, reports, err := Performance(testPerformance(), ionian, model.ScalePattern{})

	assert := assert.New(t)
	assert.True(errors.Is(err, scale.ErrInvalidScalePattern))
	assert.Nil(res.Tracks)
	assert.Nil(reports)
}

func TestPrimaryKeySkipsEmptyTracks(t *testing.T) {
	perf := testPerformance()
	perf.Tracks = append([]model.Track{{Name: "empty"}}, perf.Tracks[2:]...)

	k, err := PrimaryKey(perf)
	assert.NoError(t, err)
	assert.Equal(t, 2, k)

	_, err = PrimaryKey(model.Performance{Tracks: []model.Track{{}}})
	assert.True(t, errors.Is(err, key.ErrNoNotes))
}

func TestByName(t *testing.T) {
	res, _, err := ByName(testPerformance(), "ionian", "harmonic-minor")
	assert.NoError(t, err)
	assert.Equal(t, []model.Pitch{60, 63, 67, 72}, res.Tracks[1].Pitches())

	_, _, err = ByName(testPerformance(), "ionian", "nope")
	assert.True(t, errors.Is(err, scale.ErrUnknownScale))
}

func TestTrackCopiesMetadata(t *testing.T) {
	track := model.Track{Name: "lead", Instrument: "flute", Notes: notes(61)}
	res, err := Track(track, ionian, aeolian, 0)
	assert.NoError(t, err)
	assert.Equal(t, "lead", res.Name)
	assert.Equal(t, "flute", res.Instrument)
	assert.Equal(t, 60, res.Notes[0].Pitch)
}
