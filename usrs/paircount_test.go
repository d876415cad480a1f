package usrs

import "testing"

func TestPairingCountTracksChecks(t *testing.T) {
	ResetPairingCount()
	s := New(4)
	if !s.VerifyStructure(newRng("paircount")) {
		t.Fatalf("VerifyStructure failed")
	}
	if PairingCount() == 0 {
		t.Fatalf("expected VerifyStructure to perform at least one pairing")
	}
}

func TestResetPairingCount(t *testing.T) {
	ResetPairingCount()
	s := New(4)
	s.VerifyStructure(newRng("paircount-reset"))
	if PairingCount() == 0 {
		t.Fatalf("expected nonzero count before reset")
	}
	ResetPairingCount()
	if PairingCount() != 0 {
		t.Fatalf("ResetPairingCount did not zero the counter")
	}
}
