package geodaily

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	store := NewFileStore(path)
	ctx := context.Background()

	award := 3
	snap := NewSnapshot()
	snap.Users["ana"] = User{Score: 5}
	snap.Challenges[testDay] = &Challenge{
		Date:     testDay,
		Location: "Peru",
		Status:   StatusFinished,
		Merged:   true,
		Guesses: []Guess{
			{Username: "ana", RawText: "Ecuador", DistanceKM: 5.5, Award: &award},
		},
	}

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Users["ana"].Score != 5 {
		t.Errorf("ana score = %d, want 5", got.Users["ana"].Score)
	}
	ch := got.Challenges[testDay]
	if ch == nil {
		t.Fatal("challenge missing after roundtrip")
	}
	if !ch.Merged || ch.Status != StatusFinished {
		t.Errorf("challenge flags lost: status=%q merged=%v", ch.Status, ch.Merged)
	}
	if len(ch.Guesses) != 1 || ch.Guesses[0].Award == nil || *ch.Guesses[0].Award != 3 {
		t.Errorf("guess lost in roundtrip: %+v", ch.Guesses)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Users) != 0 || len(snap.Challenges) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "game.json"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, NewSnapshot()); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "game.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want just game.json", names)
	}
}

func TestMemStoreIsolatesSnapshots(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	snap := NewSnapshot()
	snap.Users["ana"] = User{Score: 1}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _ := store.Load(ctx)
	loaded.Users["ana"] = User{Score: 99}

	// Mutating a loaded copy must not leak into the store.
	again, _ := store.Load(ctx)
	if again.Users["ana"].Score != 1 {
		t.Errorf("store mutated through loaded copy: score = %d", again.Users["ana"].Score)
	}
}
