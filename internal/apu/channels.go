package apu

// clockEnvelope advances a volume envelope by one envelope-clock tick
// (64 Hz). Shared by PulseChannel and NoiseChannel; WaveChannel has no
// envelope of its own, only a fixed four-step output-level divider.
func clockEnvelope(timer *uint8, period uint8, volume *uint8, increase bool) {
	if period == 0 {
		return
	}
	if *timer > 0 {
		*timer--
	}
	if *timer != 0 {
		return
	}
	*timer = period
	switch {
	case increase && *volume < 15:
		*volume++
	case !increase && *volume > 0:
		*volume--
	}
}

// bipolarSample centers a single output bit (duty-cycle bit or LFSR bit)
// around zero and scales it by an envelope volume, shared by PulseChannel
// and NoiseChannel's GetSample.
func bipolarSample(bit uint8, volume uint8) float32 {
	return (float32(bit)*2.0 - 1.0) * float32(volume) / 15.0
}
