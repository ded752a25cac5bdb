package main

import (
	"context"
	"testing"

	"vitalsim/internal/adapter/repo/memory"
	"vitalsim/internal/domain/conditions"
	"vitalsim/internal/platform/config"
)

func TestNewDice_SeededRunsRepeat(t *testing.T) {
	a, b := newDice(42), newDice(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() || a.IntN(3) != b.IntN(3) {
			t.Fatalf("seeded dice diverged at draw %d", i)
		}
	}
	if _, ok := newDice(0).(conditions.GlobalDice); !ok {
		t.Fatalf("zero seed should use the global source")
	}
}

func TestMustBuildRepos_DefaultsToMemory(t *testing.T) {
	repos := mustBuildRepos(context.Background(), config.Config{Store: config.StoreMemory})
	if _, ok := repos.state.(memory.SessionStateRepo); !ok {
		t.Fatalf("state repo = %T, want memory", repos.state)
	}
	if _, ok := repos.tx.(memory.TxManager); !ok {
		t.Fatalf("tx manager = %T, want memory", repos.tx)
	}
}
