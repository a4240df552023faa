package alert

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAlerter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeAlerter) Alert(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestBellWritesBEL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBell(&buf).Alert(context.Background()))
	require.Equal(t, "\a", buf.String())
}

func TestBellWithoutOutput(t *testing.T) {
	require.Error(t, NewBell(nil).Alert(context.Background()))
}

func TestMultiCallsEveryAlerter(t *testing.T) {
	a, b := &fakeAlerter{}, &fakeAlerter{}
	require.NoError(t, Multi{a, nil, b}.Alert(context.Background()))
	require.EqualValues(t, 1, a.calls.Load())
	require.EqualValues(t, 1, b.calls.Load())
}

func TestMultiReturnsError(t *testing.T) {
	a := &fakeAlerter{err: errors.New("device busy")}
	b := &fakeAlerter{}
	err := Multi{a, b}.Alert(context.Background())
	require.EqualError(t, err, "device busy")
	require.EqualValues(t, 1, b.calls.Load())
}

func TestNop(t *testing.T) {
	require.NoError(t, Nop{}.Alert(context.Background()))
}

func TestEncodeWAV(t *testing.T) {
	spec := ToneSpec{Frequency: 440, Duration: 100 * time.Millisecond, SampleRate: 8000, Floor: 0.001}
	wav, err := EncodeWAV(spec)
	require.NoError(t, err)

	samples := 800
	require.Len(t, wav, 44+samples*2)
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, "data", string(wav[36:40]))
	require.Equal(t, uint32(samples*2), binary.LittleEndian.Uint32(wav[40:44]))
	require.Equal(t, uint32(8000), binary.LittleEndian.Uint32(wav[24:28]))

	// decays: the loudest sample of the last tenth is far below the first tenth
	peak := func(from, to int) int {
		m := 0
		for i := from; i < to; i++ {
			v := int(int16(binary.LittleEndian.Uint16(wav[44+2*i:])))
			if v < 0 {
				v = -v
			}
			if v > m {
				m = v
			}
		}
		return m
	}
	require.Greater(t, peak(0, samples/10), 10*peak(samples*9/10, samples))
}

func TestEncodeWAVRejectsBadSpec(t *testing.T) {
	_, err := EncodeWAV(ToneSpec{})
	require.Error(t, err)

	bad := DefaultTone
	bad.Floor = 1
	_, err = EncodeWAV(bad)
	require.Error(t, err)
}

func TestNewToneUnknownPlayer(t *testing.T) {
	_, err := NewTone(WithPlayer("reptimer-no-such-player"))
	require.Error(t, err)
}
