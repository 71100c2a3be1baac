package out

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	apperrors "github.com/sayanthsai/ADHD-simulator/internal/platform/errors"
)

const mixRate = beep.SampleRate(44100)

// BeepAudio drives the speaker for the background loop and one-shot cues.
// A failed speaker init leaves the adapter not ready and every method a
// no-op, so a machine without audio still runs the full session.
type BeepAudio struct {
	log        *zap.Logger
	ready      bool
	loopVolume float64
	cueVolume  float64

	loopStream beep.StreamSeekCloser
	loopRate   beep.SampleRate
	loopCtrl   *beep.Ctrl
}

func NewBeepAudio(log *zap.Logger, loopVolume, cueVolume float64) *BeepAudio {
	a := &BeepAudio{log: log, loopVolume: loopVolume, cueVolume: cueVolume}
	if err := speaker.Init(mixRate, mixRate.N(time.Second/10)); err != nil {
		log.Warn("speaker init failed, audio disabled", zap.Error(err))
		return a
	}
	a.ready = true
	return a
}

func (a *BeepAudio) Ready() bool { return a.ready }

func (a *BeepAudio) LoadLoop(path string) error {
	if !a.ready {
		return apperrors.ErrAudioUnavailable
	}
	stream, format, err := decodeFile(path)
	if err != nil {
		return err
	}
	a.loopStream = stream
	a.loopRate = format.SampleRate
	return nil
}

func (a *BeepAudio) PlayLoop() {
	if !a.ready || a.loopStream == nil {
		return
	}
	a.loopCtrl = &beep.Ctrl{Streamer: beep.Loop(-1, a.loopStream)}
	speaker.Play(a.mixed(a.loopCtrl, a.loopRate, a.loopVolume))
}

func (a *BeepAudio) StopLoop() {
	if a.loopCtrl == nil {
		return
	}
	speaker.Lock()
	a.loopCtrl.Paused = true
	speaker.Unlock()
}

// PlayOnce decodes and plays a cue to completion. Safe to call from any
// goroutine; the speaker serializes mixing internally.
func (a *BeepAudio) PlayOnce(path string) error {
	if !a.ready {
		return apperrors.ErrAudioUnavailable
	}
	stream, format, err := decodeFile(path)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(
		a.mixed(stream, format.SampleRate, a.cueVolume),
		beep.Callback(func() { close(done) }),
	))
	<-done
	return stream.Close()
}

func (a *BeepAudio) mixed(s beep.Streamer, rate beep.SampleRate, volume float64) beep.Streamer {
	if rate != mixRate {
		s = beep.Resample(4, rate, mixRate, s)
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(volume),
		Silent:   volume <= 0,
	}
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %s: %v", apperrors.ErrDecode, path, err)
	}
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: unsupported audio format %s", apperrors.ErrDecode, path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s: %v", apperrors.ErrDecode, path, err)
	}
	return stream, format, nil
}
