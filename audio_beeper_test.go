package main

import (
	"testing"
)

func newTestBeeper(t *testing.T) *Beeper {
	t.Helper()
	beeper, err := NewBeeper(AUDIO_BACKEND_HEADLESS)
	if err != nil {
		t.Fatalf("failed to build beeper: %v", err)
	}
	return beeper
}

func TestBeeperSilentWhenGateClosed(t *testing.T) {
	beeper := newTestBeeper(t)

	samples := make([]float32, 64)
	for i := range samples {
		samples[i] = 0.5 // stale data the generator must overwrite
	}
	beeper.GenerateSamples(samples)

	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestBeeperSquareWaveWhenGateOpen(t *testing.T) {
	beeper := newTestBeeper(t)
	beeper.SetBeeping(true)

	samples := make([]float32, 256)
	beeper.GenerateSamples(samples)

	if samples[0] != BEEP_VOLUME {
		t.Fatalf("sample 0 = %v, want %v", samples[0], float32(BEEP_VOLUME))
	}

	sawLow := false
	for i, s := range samples {
		if s != BEEP_VOLUME && s != -BEEP_VOLUME {
			t.Fatalf("sample %d = %v, want ±%v", i, s, float32(BEEP_VOLUME))
		}
		if s == -BEEP_VOLUME {
			sawLow = true
		}
	}
	// 440 Hz at 44100 Hz flips polarity every ~50 samples.
	if !sawLow {
		t.Fatal("no low half-cycle in 256 samples")
	}
}

// TestBeeperPhaseContinuity verifies the tone phase carries across
// buffer boundaries: two small buffers must sound identical to one
// large one.
func TestBeeperPhaseContinuity(t *testing.T) {
	split := newTestBeeper(t)
	split.SetBeeping(true)
	joined := newTestBeeper(t)
	joined.SetBeeping(true)

	first := make([]float32, 64)
	second := make([]float32, 64)
	split.GenerateSamples(first)
	split.GenerateSamples(second)

	whole := make([]float32, 128)
	joined.GenerateSamples(whole)

	for i := range first {
		if first[i] != whole[i] {
			t.Fatalf("sample %d = %v, want %v", i, first[i], whole[i])
		}
	}
	for i := range second {
		if second[i] != whole[64+i] {
			t.Fatalf("sample %d = %v, want %v", 64+i, second[i], whole[64+i])
		}
	}
}

func TestBeeperGateFollowsSetBeeping(t *testing.T) {
	beeper := newTestBeeper(t)

	if beeper.IsBeeping() {
		t.Fatal("gate open after construction")
	}
	beeper.SetBeeping(true)
	if !beeper.IsBeeping() {
		t.Fatal("gate closed after SetBeeping(true)")
	}
	beeper.SetBeeping(false)
	if beeper.IsBeeping() {
		t.Fatal("gate open after SetBeeping(false)")
	}
}

func TestBeeperBackendLifecycle(t *testing.T) {
	beeper := newTestBeeper(t)

	beeper.Start()
	if !beeper.output.IsStarted() {
		t.Fatal("backend not started after Start")
	}
	beeper.Stop()
	if beeper.output.IsStarted() {
		t.Fatal("backend still started after Stop")
	}
}

func TestNewAudioOutputUnknownBackend(t *testing.T) {
	if _, err := NewAudioOutput(99, SAMPLE_RATE); err == nil {
		t.Fatal("unknown audio backend accepted")
	}
	if _, err := NewBeeper(99); err == nil {
		t.Fatal("unknown audio backend accepted by beeper")
	}
}
