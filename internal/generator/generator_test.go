package generator

import (
	"errors"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nrjt/eduplatform/internal/config"
	"github.com/nrjt/eduplatform/internal/db"
	"github.com/nrjt/eduplatform/internal/types"
)

var seedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func testConfig() *types.Config {
	cfg := config.DefaultConfig()
	cfg.Seed.Enabled = true
	return &cfg
}

type recordingStore struct {
	uploads []Upload
	failAt  int
}

func (s *recordingStore) ApplyUpload(scope types.Scope, kind types.Kind, folderName string, desc types.FileDescriptor) error {
	if s.failAt > 0 && len(s.uploads)+1 == s.failAt {
		return errors.New("store unavailable")
	}
	s.uploads = append(s.uploads, Upload{Scope: scope, Kind: kind, FolderName: folderName, Descriptor: desc})
	return nil
}

// TestRNG tests that the same seed produces the same sequence
func TestRNG(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 100; i++ {
		val1 := rng1.Intn(1000)
		val2 := rng2.Intn(1000)
		if val1 != val2 {
			t.Errorf("Same seed should produce same sequence. Iteration %d: got %d and %d", i, val1, val2)
		}
	}
}

// TestGenerateAllDeterministic tests that generation depends only on the seed
func TestGenerateAllDeterministic(t *testing.T) {
	cfg := testConfig()

	first, err := GenerateAll(cfg, seedNow)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := GenerateAll(cfg, seedNow)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Same seed should generate the same uploads")
	}

	cfg.Seed.Seed = 7
	other, err := GenerateAll(cfg, seedNow)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reflect.DeepEqual(first, other) {
		t.Errorf("Different seeds should generate different uploads")
	}
}

// TestGenerateAllCoversCatalog tests that every scope and kind gets its folders
func TestGenerateAllCoversCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.Seed.Folders = 2

	uploads, err := GenerateAll(cfg, seedNow)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	folders := make(map[string]bool)
	for _, u := range uploads {
		folders[u.Scope.String()+"|"+string(u.Kind)+"|"+u.FolderName] = true
	}

	// 4 school standards x 3 boards + neet + jee
	wantScopes := 14
	if len(Scopes()) != wantScopes {
		t.Fatalf("Expected %d scopes, got %d", wantScopes, len(Scopes()))
	}
	if len(folders) != wantScopes*len(types.Kinds)*cfg.Seed.Folders {
		t.Errorf("Expected %d folders, got %d", wantScopes*len(types.Kinds)*cfg.Seed.Folders, len(folders))
	}
	if !folders["neet|video|Chapter 2"] {
		t.Errorf("Expected neet video folder Chapter 2")
	}
}

// TestGenerateFolderFiles tests generated file fields
func TestGenerateFolderFiles(t *testing.T) {
	cfg := testConfig()
	cfg.Seed.MaxFiles = 5
	scope := types.Scope{Standard: "9th", Board: "State Board"}

	for i := 1; i <= 20; i++ {
		uploads := GenerateFolder(scope, types.KindDocument, i, NewRNG(int64(i)), cfg, seedNow)
		if len(uploads) == 0 {
			t.Fatalf("Folder %d generated no uploads", i)
		}

		files := 0
		for _, u := range uploads {
			if u.FolderName != "Chapter "+strconv.Itoa(i) {
				t.Errorf("Unexpected folder name %q", u.FolderName)
			}
			file, ok := u.Descriptor.File()
			if !ok {
				if link := u.Descriptor.Link(); link != "" && !strings.Contains(link, "9th%2FState%20Board") {
					t.Errorf("Reference link should carry the escaped scope, got %q", link)
				}
				continue
			}
			files++
			if !strings.HasPrefix(file.Name, "notes_") || !strings.HasSuffix(file.Name, ".pdf") {
				t.Errorf("Unexpected document name %q", file.Name)
			}
			if !strings.HasSuffix(file.Size, " MB") {
				t.Errorf("Size should be formatted in MB, got %q", file.Size)
			}
			date, err := time.Parse(cfg.Paths.DateLayout, file.Date)
			if err != nil {
				t.Errorf("Date %q does not match layout: %v", file.Date, err)
			} else if date.After(seedNow) {
				t.Errorf("Date %q lies in the future", file.Date)
			}
			if file.Type != types.KindDocument {
				t.Errorf("Expected document type, got %q", file.Type)
			}
		}
		if files < 1 || files > cfg.Seed.MaxFiles {
			t.Errorf("Folder %d: expected 1..%d files, got %d", i, cfg.Seed.MaxFiles, files)
		}
	}
}

// TestGenerateFolderWithoutFiles tests that empty folders still get created
func TestGenerateFolderWithoutFiles(t *testing.T) {
	cfg := testConfig()
	cfg.Seed.MaxFiles = 0

	uploads := GenerateFolder(types.Scope{Standard: "jee"}, types.KindVideo, 1, NewRNG(1), cfg, seedNow)
	if len(uploads) != 1 {
		t.Fatalf("Expected a single link-only upload, got %d", len(uploads))
	}
	if uploads[0].Descriptor.Kind() != types.DescriptorLinkOnly {
		t.Errorf("Expected link-only descriptor, got %q", uploads[0].Descriptor.Kind())
	}
}

// TestValidateConfig tests configuration validation
func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*types.Config)
		expectError bool
	}{
		{name: "defaults", mutate: func(*types.Config) {}},
		{name: "negative folders", mutate: func(c *types.Config) { c.Seed.Folders = -1 }, expectError: true},
		{name: "negative files", mutate: func(c *types.Config) { c.Seed.MaxFiles = -2 }, expectError: true},
		{name: "empty layout", mutate: func(c *types.Config) { c.Paths.DateLayout = "" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}

	if err := ValidateConfig(nil); err == nil {
		t.Errorf("Expected error for nil config")
	}
}

// TestSeed tests writing generated content through a store
func TestSeed(t *testing.T) {
	cfg := testConfig()

	store := &recordingStore{}
	n, err := Seed(store, cfg, seedNow)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want, _ := GenerateAll(cfg, seedNow)
	if n != len(want) || !reflect.DeepEqual(store.uploads, want) {
		t.Errorf("Seed should apply every generated upload in order")
	}

	failing := &recordingStore{failAt: 3}
	n, err = Seed(failing, cfg, seedNow)
	if err == nil {
		t.Fatalf("Expected store error")
	}
	if n != 2 {
		t.Errorf("Expected 2 uploads applied before the failure, got %d", n)
	}
}

// TestSeedIntoDatabase tests seeding a real store
func TestSeedIntoDatabase(t *testing.T) {
	store, err := db.New(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer store.Close()

	cfg := testConfig()
	if _, err := Seed(store, cfg, seedNow); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	folders, err := store.ListFolders(types.Scope{Standard: "7th", Board: "CBSE"}, types.KindVideo)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != cfg.Seed.Folders {
		t.Fatalf("Expected %d folders, got %d", cfg.Seed.Folders, len(folders))
	}
	if folders[0].FolderName != "Chapter 1" || folders[1].FolderName != "Chapter 2" {
		t.Errorf("Folders should keep generation order, got %q, %q", folders[0].FolderName, folders[1].FolderName)
	}
}
