package notation

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
)

// TicksPerBeat is the file resolution. Every catalogue duration is a whole
// number of ticks at this resolution.
const TicksPerBeat = 960

const noteVelocity = 96

type midiEvent struct {
	tick uint32
	on   bool
	key  uint8
}

// EncodeMIDI renders m as a format 1 Standard MIDI File: a conductor track
// carrying meter and tempo followed by one track per voice.
func EncodeMIDI(m *generator.Melody) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMIDI(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMIDI streams the Standard MIDI File for m to w.
func WriteMIDI(w io.Writer, m *generator.Melody) error {
	if m == nil || len(m.Voices) == 0 {
		return fmt.Errorf("%w: melody has no voices", music.ErrInvalidArgument)
	}
	ts, err := music.LookupTimeSignature(m.TimeSignature)
	if err != nil {
		return err
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerBeat)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(uint8(ts.BeatsPerBar), uint8(ts.BeatUnit)))
	conductor.Add(0, smf.MetaTempo(float64(m.Tempo)))
	conductor.Close(0)
	if err := sm.Add(conductor); err != nil {
		return fmt.Errorf("add conductor track: %w", err)
	}

	for i, v := range m.Voices {
		track, err := voiceTrack(uint8(i), v)
		if err != nil {
			return err
		}
		if err := sm.Add(track); err != nil {
			return fmt.Errorf("add %s track: %w", v.Name, err)
		}
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("write midi: %w", err)
	}
	return nil
}

func voiceTrack(channel uint8, v generator.Voice) (smf.Track, error) {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(v.Name))

	var events []midiEvent
	for _, n := range FlattenBars(v.Bars) {
		key := n.Pitch.MIDI()
		if key < 0 || key > 127 {
			return nil, fmt.Errorf("%w: pitch %s outside the MIDI range", music.ErrInvalidArgument, n.Pitch)
		}
		events = append(events,
			midiEvent{tick: ticks(n.Start), on: true, key: uint8(key)},
			midiEvent{tick: ticks(n.End()), on: false, key: uint8(key)},
		)
	}
	// Offs sort before ons at the same tick so repeated pitches re-trigger.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	var last uint32
	for _, e := range events {
		delta := e.tick - last
		last = e.tick
		if e.on {
			track.Add(delta, midi.NoteOn(channel, e.key, noteVelocity))
		} else {
			track.Add(delta, midi.NoteOff(channel, e.key))
		}
	}
	track.Close(0)
	return track, nil
}

func ticks(beats float64) uint32 {
	return uint32(math.Round(beats * TicksPerBeat))
}
