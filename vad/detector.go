// SPDX-License-Identifier: EPL-2.0

package vad

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

var (
	ErrInvalidMode  = errors.New("vad mode must be between 0 and 3")
	ErrInvalidFrame = errors.New("frame length is not valid for the sample rate")
)

// Detector classifies one frame of 16-bit PCM as speech or not.
type Detector interface {
	IsSpeech(frame []int16, sampleRate int) (bool, error)
}

// WebRTC wraps the WebRTC voice activity detector. It accepts 10, 20 or
// 30 ms frames at 8, 16, 32 or 48 kHz. It is not safe for concurrent use.
type WebRTC struct {
	vad *webrtcvad.VAD
	buf []byte
}

// NewWebRTC creates a detector; mode is the aggressiveness, 0 (least) to 3.
func NewWebRTC(mode int) (*WebRTC, error) {
	if mode < 0 || mode > 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("creating webrtc vad: %w", err)
	}

	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("setting webrtc vad mode: %w", err)
	}

	return &WebRTC{vad: v}, nil
}

func (w *WebRTC) IsSpeech(frame []int16, sampleRate int) (bool, error) {
	if cap(w.buf) < len(frame)*2 {
		w.buf = make([]byte, len(frame)*2)
	}
	w.buf = w.buf[:len(frame)*2]

	for i, s := range frame {
		binary.LittleEndian.PutUint16(w.buf[2*i:], uint16(s))
	}

	if !w.vad.ValidRateAndFrameLength(sampleRate, len(frame)) {
		return false, fmt.Errorf("%w: %d samples at %d Hz", ErrInvalidFrame, len(frame), sampleRate)
	}

	speech, err := w.vad.Process(sampleRate, w.buf)
	if err != nil {
		return false, fmt.Errorf("webrtc vad: %w", err)
	}

	return speech, nil
}

// Energy flags a frame as speech when its RMS level is above ThresholdDB
// (dBFS). It needs no cgo and suits clean studio recordings.
type Energy struct {
	ThresholdDB float64
}

func (e Energy) IsSpeech(frame []int16, _ int) (bool, error) {
	if len(frame) == 0 {
		return false, nil
	}

	var sum float64
	for _, s := range frame {
		v := float64(s) / 32768
		sum += v * v
	}

	rms := math.Sqrt(sum / float64(len(frame)))
	if rms == 0 {
		return false, nil
	}

	return 20*math.Log10(rms) > e.ThresholdDB, nil
}
