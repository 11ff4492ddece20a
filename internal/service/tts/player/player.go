package player

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Default реализует Player и поддерживает mp3 и wav. Play блокируется до конца воспроизведения.
type Default struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

// VolumeDB переводит громкость 0-100 в dB для effects.Volume; 100 — без изменений.
func VolumeDB(percent int) float64 {
	v := max(0, min(100, percent))
	return float64(v-100) / 5.0
}

// NormalizeFormat приводит имя формата к виду mp3|wav; прочие форматы не поддерживаются.
func NormalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "mp3", "wav":
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

func (d *Default) Play(format string, r io.ReadCloser) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		_ = r.Close()
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		bf       beep.Format
	)
	if f == "wav" {
		streamer, bf, err = wav.Decode(r)
	} else {
		streamer, bf, err = mp3.Decode(r)
	}
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(bf.SampleRate, bf.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
