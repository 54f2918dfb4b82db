package core

import (
	"testing"
)

// TestNewSessionIDUniqueness tests that NewSessionID generates unique identifiers
func TestNewSessionIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[SessionID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewSessionID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseSessionID tests round-tripping through the text form
func TestParseSessionID(t *testing.T) {
	id := NewSessionID()

	parsed, err := ParseSessionID(" " + id.String() + " ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseSessionID(""); err == nil {
		t.Error("Expected error for empty ID")
	}
	if _, err := ParseSessionID("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed ID")
	}
}

// TestStringSeedIsStable tests that string seeds are fixed digests
func TestStringSeedIsStable(t *testing.T) {
	a := StringSeed("Mathics")
	b := StringSeed("Mathics")
	if a.Cmp(b) != 0 {
		t.Errorf("Expected identical seeds, got %s and %s", a, b)
	}
	if a.Sign() <= 0 {
		t.Errorf("Expected positive seed, got %s", a)
	}
	if StringSeed("mathics").Cmp(a) == 0 {
		t.Error("Expected different strings to give different seeds")
	}
	if StringSeed("").BitLen() > 128 {
		t.Error("Expected a 128-bit digest")
	}
}

// TestErrorClassification tests the error helpers
func TestErrorClassification(t *testing.T) {
	if !IsStateError(NewInvalidStateError("short blob")) {
		t.Error("Expected invalid state error to be classified as state error")
	}
	if !IsSampleSizeError(NewSampleSizeError(5, 3)) {
		t.Error("Expected sample size error to be classified")
	}
	if !IsValidationError(NewShapeError("{1, -1}")) {
		t.Error("Expected shape error to be classified as validation error")
	}
	if IsValidationError(ErrInvalidState) {
		t.Error("Expected state error not to be a validation error")
	}
}
