package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/colortelevision/midi-scale-conv/constants"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoTracks = errors.New("performance has no tracks")

func ReadMidiFile(filepath string) (model.Performance, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return model.Performance{}, errors.Wrap(err, "Error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

// Read parses a Standard MIDI File into tracks of notes with times in
// seconds, following the file's tempo map.
func Read(r io.Reader) (p model.Performance, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			p = model.Performance{}
			e = errors.Errorf("Error parsing midi file... %v", rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return model.Performance{}, errors.Wrap(err, "Error parsing midi file")
	}

	res := model.Performance{BPM: constants.DefaultBPM}
	tempoFound := false
	for i, events := range s.Tracks {
		track, bpm := readTrack(s, i, events)
		if bpm > 0 && !tempoFound {
			res.BPM = bpm
			tempoFound = true
		}
		res.Tracks = append(res.Tracks, track)
	}
	return res, nil
}

type openNote struct {
	index int
	start int64
}

func seconds(s *smf.SMF, absTicks int64) float64 {
	return float64(s.TimeAt(absTicks)) / 1e6
}

// readTrack pairs note starts with note ends per channel and key. It also
// returns the first tempo in the track, or 0.
func readTrack(s *smf.SMF, trackNum int, events smf.Track) (model.Track, float64) {
	var track model.Track
	var firstBPM float64
	var nameFound, instrumentFound bool
	log := logrus.WithField("track", trackNum)

	track.Notes = []model.NoteEvent{}
	open := make(map[uint16]openNote)
	var absTicks int64
	for _, event := range events {
		absTicks += int64(event.Delta)

		var channel, key, velocity uint8
		var text string
		var bpm float64
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			id := uint16(channel)<<8 | uint16(key)
			if _, ok := open[id]; ok {
				log.Warnf("note double pressed: %s ch=%d", model.NoteName(int(key)), channel)
				continue
			}
			open[id] = openNote{index: len(track.Notes), start: absTicks}
			track.Notes = append(track.Notes, model.NoteEvent{
				Pitch:    int(key),
				Time:     seconds(s, absTicks),
				Velocity: velocity,
				Channel:  channel,
			})
		case event.Message.GetNoteEnd(&channel, &key):
			id := uint16(channel)<<8 | uint16(key)
			n, ok := open[id]
			if !ok {
				log.Warnf("note off for unpressed note: %s ch=%d", model.NoteName(int(key)), channel)
				continue
			}
			delete(open, id)
			track.Notes[n.index].Duration = seconds(s, absTicks) - track.Notes[n.index].Time
		case event.Message.GetMetaTrackName(&text):
			if !nameFound {
				track.Name = text
				nameFound = true
			}
		case event.Message.GetMetaInstrument(&text):
			if !instrumentFound {
				track.Instrument = text
				instrumentFound = true
			}
		case event.Message.GetMetaTempo(&bpm):
			if firstBPM == 0 {
				firstBPM = bpm
			}
		}
	}

	// close hanging notes at the end of the track
	for _, id := range util.GetKeysSorted(open) {
		n := open[id]
		note := &track.Notes[n.index]
		log.Warnf("missing note off for note: %s ch=%d", model.NoteName(note.Pitch), note.Channel)
		note.Duration = seconds(s, absTicks) - note.Time
	}

	return track, firstBPM
}

func WriteMidiFile(path string, perf model.Performance) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Couldn't create file: "+path)
	}
	defer f.Close()

	if err := Write(f, perf); err != nil {
		return err
	}
	return f.Close()
}

// Write encodes perf as a format 1 file: a conductor track with tempo and
// meter followed by one track per performance track.
func Write(w io.Writer, perf model.Performance) error {
	if len(perf.Tracks) == 0 {
		return ErrNoTracks
	}
	bpm := perf.BPM
	if bpm <= 0 {
		bpm = constants.DefaultBPM
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(4, 4))
	conductor.Add(0, smf.MetaTempo(bpm))
	conductor.Close(0)
	if err := s.Add(conductor); err != nil {
		return errors.Wrap(err, "error adding tempo track")
	}

	for i, track := range perf.Tracks {
		if err := s.Add(buildTrack(i, track, bpm)); err != nil {
			return errors.Wrapf(err, "error adding track %d", i)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "error writing midi file")
	}
	return nil
}

type timedMessage struct {
	tick  uint32
	isOff bool
	msg   gomidi.Message
}

func toTicks(secs, bpm float64) uint32 {
	if secs <= 0 {
		return 0
	}
	return uint32(math.Round(secs * bpm / 60 * constants.TicksPerQuarter))
}

// writablePitch moves a pitch into 0-127 by whole octaves. Mapping can push
// notes in the top octave past G9.
func writablePitch(p model.Pitch) uint8 {
	res := p
	for res > constants.MaxPitch {
		res -= 12
	}
	for res < 0 {
		res += 12
	}
	if res != p {
		logrus.Warnf("pitch %d outside MIDI range, written as %s", p, model.NoteName(res))
	}
	return uint8(res)
}

func buildTrack(trackNum int, track model.Track, bpm float64) smf.Track {
	var res smf.Track
	if track.Name != "" {
		res.Add(0, smf.MetaTrackSequenceName(track.Name))
	}
	if track.Instrument != "" {
		res.Add(0, smf.MetaInstrument(track.Instrument))
	}

	msgs := make([]timedMessage, 0, len(track.Notes)*2)
	for _, note := range track.Notes {
		key := writablePitch(note.Pitch)
		channel := note.Channel & 0x0F
		velocity := note.Velocity
		if velocity == 0 {
			velocity = 1
		}
		start := toTicks(note.Time, bpm)
		end := toTicks(note.Time+note.Duration, bpm)
		if end <= start {
			end = start + 1
		}
		msgs = append(msgs,
			timedMessage{tick: start, msg: gomidi.NoteOn(channel, key, velocity)},
			timedMessage{tick: end, isOff: true, msg: gomidi.NoteOff(channel, key)},
		)
	}

	// note offs first so back to back notes on one key don't swallow each other
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].isOff && !msgs[j].isOff
	})

	var last uint32
	for _, m := range msgs {
		res.Add(m.tick-last, m.msg)
		last = m.tick
	}
	res.Close(0)

	logrus.WithFields(logrus.Fields{
		"track": trackNum,
		"name":  track.Name,
		"notes": len(track.Notes),
	}).Debug("Built track")
	return res
}

// Describe is a one line summary for CLI output.
func Describe(perf model.Performance) string {
	numNotes := 0
	for _, t := range perf.Tracks {
		numNotes += len(t.Notes)
	}
	return fmt.Sprintf("%d tracks, %d notes, %.1f bpm", len(perf.Tracks), numNotes, perf.BPM)
}
