package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/colortelevision/midi-scale-conv/midi"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/stretchr/testify/assert"
)

func TestPrintScales(t *testing.T) {
	var buf bytes.Buffer
	printScales(&buf)

	out := buf.String()
	assert.Contains(t, out, "harmonic-minor")
	assert.Contains(t, out, "Aeolian (Natural Minor)")
	assert.Contains(t, out, "C D E G A")
}

func TestDetectPrintsKeys(t *testing.T) {
	var buf bytes.Buffer
	perf := cMajorPerformance()
	perf.Tracks = append([]model.Track{{Name: "conductor"}}, perf.Tracks...)

	assert.NoError(t, detect(&buf, perf))
	out := buf.String()
	assert.Contains(t, out, `track 0 "conductor": no notes`)
	assert.Contains(t, out, `track 1 "scale": 8 notes, key C`)
	assert.Contains(t, out, "Detected key: C")
}

func TestDetectFailsWithoutNotes(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, detect(&buf, model.Performance{Tracks: []model.Track{{}}}))
}

func TestRunTransform(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mid")
	out := filepath.Join(dir, "out.mid")
	assert.NoError(t, midi.WriteMidiFile(in, cMajorPerformance()))

	fromScale, toScale = "ionian", "aeolian"
	var buf bytes.Buffer
	transformCmd.SetOut(&buf)
	assert.NoError(t, runTransform(transformCmd, in, out))
	assert.Contains(t, buf.String(), "key C")

	perf, err := midi.ReadMidiFile(out)
	assert.NoError(t, err)
	assert.Equal(t, "scale", perf.Tracks[2].Name)
	assert.Equal(t, []model.Pitch{60, 62, 63, 65, 67, 68, 70, 72}, perf.Tracks[2].Pitches())
}
