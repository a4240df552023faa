package alert

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ToneSpec describes a decaying sine beep.
type ToneSpec struct {
	Frequency  float64
	Duration   time.Duration
	SampleRate int
	// Floor is the gain reached at the end of the exponential ramp that starts at 1.0.
	Floor float64
}

var DefaultTone = ToneSpec{
	Frequency:  440,
	Duration:   3 * time.Second,
	SampleRate: 22050,
	Floor:      0.00001,
}

// knownPlayers are tried in order when no player is configured.
var knownPlayers = []string{"paplay", "aplay", "afplay"}

// Tone plays a synthesized beep through an external audio player.
type Tone struct {
	spec   ToneSpec
	player string
	// args are put before the file name
	args []string

	wav []byte

	mu   sync.Mutex
	path string
}

type ToneOption func(*Tone)

func WithPlayer(player string, args ...string) ToneOption {
	return func(t *Tone) {
		t.player = player
		t.args = args
	}
}

func WithToneSpec(spec ToneSpec) ToneOption {
	return func(t *Tone) {
		t.spec = spec
	}
}

// NewTone resolves the player and renders the WAV data once.
func NewTone(options ...ToneOption) (*Tone, error) {
	t := &Tone{spec: DefaultTone}
	for _, o := range options {
		o(t)
	}

	if t.player == "" {
		player, err := FindPlayer()
		if err != nil {
			return nil, err
		}
		t.player = player
	} else {
		path, err := exec.LookPath(t.player)
		if err != nil {
			return nil, errors.Wrapf(err, "audio player %q", t.player)
		}
		t.player = path
	}

	wav, err := EncodeWAV(t.spec)
	if err != nil {
		return nil, err
	}
	t.wav = wav
	return t, nil
}

// FindPlayer returns the first known audio player on PATH.
func FindPlayer() (string, error) {
	for _, name := range knownPlayers {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("no audio player found (tried %v)", knownPlayers)
}

func (t *Tone) Player() string {
	return t.player
}

// Alert starts the player and returns once it is running. The process is
// reaped in the background and outlives ctx cancellation, bounded by the
// tone length plus a grace period.
func (t *Tone) Alert(ctx context.Context) error {
	path, err := t.file()
	if err != nil {
		return err
	}

	playCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.spec.Duration+5*time.Second)
	args := append(append([]string{}, t.args...), path)
	cmd := exec.CommandContext(playCtx, t.player, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return errors.Wrapf(err, "start %s", t.player)
	}

	go func() {
		defer cancel()
		if err := cmd.Wait(); err != nil {
			log.Debug().Err(err).Str("player", t.player).Msg("audio player exited with error")
		}
	}()
	return nil
}

// Close removes the temporary WAV file.
func (t *Tone) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.path == "" {
		return nil
	}
	err := os.Remove(t.path)
	t.path = ""
	return err
}

func (t *Tone) file() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.path != "" {
		return t.path, nil
	}
	f, err := os.CreateTemp("", "reptimer-*.wav")
	if err != nil {
		return "", errors.Wrap(err, "create tone file")
	}
	if _, err := f.Write(t.wav); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "write tone file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "close tone file")
	}
	t.path = f.Name()
	return t.path, nil
}

// EncodeWAV renders spec as a 16-bit mono PCM WAV file.
func EncodeWAV(spec ToneSpec) ([]byte, error) {
	if spec.Frequency <= 0 || spec.SampleRate <= 0 || spec.Duration <= 0 {
		return nil, errors.Errorf("invalid tone %+v", spec)
	}
	if spec.Floor <= 0 || spec.Floor >= 1 {
		return nil, errors.Errorf("tone floor must be in (0, 1), got %v", spec.Floor)
	}

	n := int(math.Round(spec.Duration.Seconds() * float64(spec.SampleRate)))
	// gain(t) = floor^(t/duration), i.e. an exponential ramp from 1 to floor
	decay := math.Log(spec.Floor) / float64(n)

	samples := make([]int16, n)
	for i := range samples {
		gain := math.Exp(decay * float64(i))
		v := math.Sin(2*math.Pi*spec.Frequency*float64(i)/float64(spec.SampleRate)) * gain
		samples[i] = int16(v * math.MaxInt16)
	}

	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := uint32(n * channels * bitsPerSample / 8)

	var buf bytes.Buffer
	buf.Grow(44 + int(dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(spec.SampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(spec.SampleRate*channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
		return nil, errors.Wrap(err, "encode samples")
	}
	return buf.Bytes(), nil
}
