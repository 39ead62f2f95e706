package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	creds := Credentials{AccessToken: "tok", Email: "gom@example.com", Nickname: "곰곰"}
	if err := store.Save(creds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != creds {
		t.Fatalf("loaded %+v, want %+v", got, creds)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if got != (Credentials{}) {
		t.Fatalf("got %+v, want zero credentials", got)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	if err := store.Save(Credentials{AccessToken: "tok", Email: "a@b", Nickname: "n"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("session file still present after Clear")
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStoreSaveOverwritesWholeDocument(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(Credentials{AccessToken: "one", Email: "a@b", Nickname: "n"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(Credentials{AccessToken: "two"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := store.Load()
	if got.AccessToken != "two" || got.Email != "" || got.Nickname != "" {
		t.Fatalf("partial overwrite detected: %+v", got)
	}
}
