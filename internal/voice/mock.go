package voice

import (
	"context"
	"encoding/binary"
	"math"
)

const (
	wavSampleRate    = 44100
	wavNumChannels   = 1
	wavBitsPerSample = 16
	wavHeaderSize    = 44

	toneDurationSec = 5
	toneFrequency   = 440.0
	toneAmplitude   = 32000
)

// MockProvider emits a 5 second 440Hz test tone as PCM WAV, ignoring the
// input text. It keeps the sync pipeline runnable without any API key;
// ffmpeg reads the WAV bytes fine regardless of the file's .mp3 name.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return generateToneWAV(), nil
}

func generateToneWAV() []byte {
	bytesPerSample := wavBitsPerSample / 8
	numSamples := wavSampleRate * toneDurationSec
	dataSize := numSamples * wavNumChannels * bytesPerSample
	byteRate := wavSampleRate * wavNumChannels * bytesPerSample
	blockAlign := wavNumChannels * bytesPerSample

	buf := make([]byte, wavHeaderSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], wavNumChannels)
	binary.LittleEndian.PutUint32(buf[24:28], wavSampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], wavBitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i := 0; i < numSamples; i++ {
		t := float64(i) / wavSampleRate
		sample := toneAmplitude * math.Sin(2*math.Pi*toneFrequency*t)
		binary.LittleEndian.PutUint16(buf[wavHeaderSize+i*2:], uint16(int16(math.Floor(sample))))
	}

	return buf
}
