package database

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateCaseID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := generateCaseID()
		if err != nil {
			t.Fatalf("generateCaseID returned error: %v", err)
		}
		if len(id) != caseIDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), caseIDLength)
		}
		for _, c := range id {
			if !strings.ContainsRune(caseIDAlphabet, c) {
				t.Fatalf("id %q contains %q outside the alphabet", id, c)
			}
		}
	}
}

// Ten thousand allocations against a growing taken-set must never
// hand out the same ID twice.
func TestAllocateCaseIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	exists := func(id string) (bool, error) {
		return seen[id], nil
	}

	for i := 0; i < 10000; i++ {
		id, err := AllocateCaseID(exists)
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("allocation %d returned duplicate ID %q", i, id)
		}
		seen[id] = true
	}
}

func TestAllocateCaseIDRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(id string) (bool, error) {
		calls++
		// First three candidates are taken.
		return calls <= 3, nil
	}

	id, err := AllocateCaseID(exists)
	if err != nil {
		t.Fatalf("AllocateCaseID returned error: %v", err)
	}
	if id == "" {
		t.Fatal("AllocateCaseID returned empty ID")
	}
	if calls != 4 {
		t.Errorf("exists called %d times, want 4", calls)
	}
}

func TestAllocateCaseIDExhausted(t *testing.T) {
	calls := 0
	exists := func(id string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := AllocateCaseID(exists)
	if !errors.Is(err, ErrCaseIDExhausted) {
		t.Fatalf("err = %v, want ErrCaseIDExhausted", err)
	}
	if calls != maxCaseIDAttempts {
		t.Errorf("exists called %d times, want %d", calls, maxCaseIDAttempts)
	}
}

func TestAllocateCaseIDPropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("store down")
	_, err := AllocateCaseID(func(id string) (bool, error) {
		return false, lookupErr
	})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("err = %v, want the lookup error", err)
	}
}
