package voice

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"neetstudio/pkg/httputil"
)

func TestMockProviderWAVShape(t *testing.T) {
	audio, err := NewMockProvider().Synthesize(context.Background(), "ignored text")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !bytes.Equal(audio[0:4], []byte("RIFF")) || !bytes.Equal(audio[8:12], []byte("WAVE")) {
		t.Fatal("output is not a RIFF/WAVE container")
	}

	dataSize := binary.LittleEndian.Uint32(audio[40:44])
	wantSamples := wavSampleRate * toneDurationSec
	if int(dataSize) != wantSamples*2 {
		t.Errorf("data size = %d, want %d", dataSize, wantSamples*2)
	}
	if len(audio) != wavHeaderSize+int(dataSize) {
		t.Errorf("total size = %d, want %d", len(audio), wavHeaderSize+int(dataSize))
	}

	sampleRate := binary.LittleEndian.Uint32(audio[24:28])
	if sampleRate != wavSampleRate {
		t.Errorf("sample rate = %d, want %d", sampleRate, wavSampleRate)
	}
	if format := binary.LittleEndian.Uint16(audio[20:22]); format != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", format)
	}
}

func TestMockProviderToneIsNotSilence(t *testing.T) {
	audio, _ := NewMockProvider().Synthesize(context.Background(), "")

	var peak int16
	for i := wavHeaderSize; i+1 < len(audio); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(audio[i : i+2]))
		if sample > peak {
			peak = sample
		}
	}
	if peak < 30000 {
		t.Errorf("peak amplitude = %d, want a loud test tone", peak)
	}
}

func newTestClient(t *testing.T, serverURL string) *OpenAIClient {
	t.Helper()
	c := NewOpenAIClient("test-key", OpenAIOptions{Model: "tts-1", Voice: "alloy"})
	c.baseURL = serverURL
	c.httpClient = httputil.NewRetryClient(http.DefaultClient, httputil.RetryConfig{MaxRetries: 1, InitialDelay: 1, MaxDelay: 1, Multiplier: 2})
	return c
}

func TestOpenAIClientSynthesize(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	audio, err := c.Synthesize(context.Background(), "Swagat hai aapka.")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	for _, want := range []string{`"model":"tts-1"`, `"voice":"alloy"`, `"input":"Swagat hai aapka."`, `"speed":1`} {
		if !bytes.Contains(gotBody, []byte(want)) {
			t.Errorf("request body missing %s\ngot: %s", want, gotBody)
		}
	}
}

func TestOpenAIClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestOpenAIClientAPIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"input too long"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.Synthesize(context.Background(), "hello")
	if err == nil || !bytes.Contains([]byte(err.Error()), []byte("input too long")) {
		t.Errorf("err = %v, want provider message surfaced", err)
	}
}
