// SPDX-License-Identifier: EPL-2.0

// Package vad trims silence from clips before augmentation.
//
// RemoveSilence runs a Detector over fixed frames and keeps the voiced ones.
// NewWebRTC binds github.com/maxhawkins/go-webrtcvad (cgo); Energy is a
// level gate for builds without it. TrimZeros and TrimSilence strip quiet
// edges without a detector.
package vad
