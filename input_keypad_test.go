package main

import "testing"

func TestKeypadSetAndGet(t *testing.T) {
	pad := NewKeypad()

	pad.SetKey(0x5, true)
	if !pad.IsPressed(0x5) {
		t.Fatal("key 5 not reported pressed")
	}
	pad.SetKey(0x5, false)
	if pad.IsPressed(0x5) {
		t.Fatal("key 5 still pressed after release")
	}
}

// TestKeypadOutOfRangeIgnored verifies indices outside 0-15 neither panic
// nor disturb state.
func TestKeypadOutOfRangeIgnored(t *testing.T) {
	pad := NewKeypad()

	pad.SetKey(-1, true)
	pad.SetKey(NUM_KEYS, true)
	if pad.IsPressed(-1) || pad.IsPressed(NUM_KEYS) {
		t.Fatal("out-of-range key reported pressed")
	}
	if _, ok := pad.FirstPressed(); ok {
		t.Fatal("out-of-range set leaked into key state")
	}
}

// TestKeypadFirstPressedLowestWins verifies ties resolve to the
// lowest-indexed key, the order the wait-for-key instruction relies on.
func TestKeypadFirstPressedLowestWins(t *testing.T) {
	pad := NewKeypad()

	pad.SetKey(0xC, true)
	pad.SetKey(0x3, true)
	pad.SetKey(0x9, true)

	key, ok := pad.FirstPressed()
	if !ok {
		t.Fatal("no key reported with three held")
	}
	requireChip8EqualU8(t, "first pressed", key, 0x3)
}

func TestKeypadFirstPressedEmpty(t *testing.T) {
	pad := NewKeypad()

	if _, ok := pad.FirstPressed(); ok {
		t.Fatal("key reported on idle keypad")
	}
}

func TestKeypadReleaseAll(t *testing.T) {
	pad := NewKeypad()

	for i := 0; i < NUM_KEYS; i++ {
		pad.SetKey(i, true)
	}
	pad.ReleaseAll()

	for i := 0; i < NUM_KEYS; i++ {
		if pad.IsPressed(i) {
			t.Fatalf("key %X still pressed after ReleaseAll", i)
		}
	}
}
