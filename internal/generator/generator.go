package generator

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

const (
	maxVideoBytes    = 250 * 1024 * 1024
	maxDocumentBytes = 8 * 1024 * 1024
	minFileBytes     = 100 * 1024
	maxAgeDays       = 180
	linkProbability  = 0.3
)

// RNG wraps math/rand.Rand for seeded random generation
type RNG struct {
	*rand.Rand
}

// NewRNG creates a new seeded random number generator
func NewRNG(seed int64) *RNG {
	return &RNG{
		Rand: rand.New(rand.NewSource(seed)),
	}
}

// Uploader is the part of the resource store the seeder writes through
type Uploader interface {
	ApplyUpload(scope types.Scope, kind types.Kind, folderName string, desc types.FileDescriptor) error
}

// Upload is one generated call to the store
type Upload struct {
	Scope      types.Scope
	Kind       types.Kind
	FolderName string
	Descriptor types.FileDescriptor
}

// GenerateFolder generates the uploads that build one sample folder. The
// folder is created by its first upload. Some folders get a reference link.
func GenerateFolder(scope types.Scope, kind types.Kind, index int, rng *RNG, cfg *types.Config, now time.Time) []Upload {
	name := fmt.Sprintf("Chapter %d", index)

	var uploads []Upload
	fileCount := 0
	if cfg.Seed.MaxFiles > 0 {
		fileCount = rng.Intn(cfg.Seed.MaxFiles) + 1
	}
	for i := 0; i < fileCount; i++ {
		uploads = append(uploads, Upload{
			Scope:      scope,
			Kind:       kind,
			FolderName: name,
			Descriptor: types.Attached(generateFile(kind, i+1, rng, cfg, now)),
		})
	}

	// Roll dice for the reference link; folders without files still need
	// one upload to exist.
	if rng.Float64() < linkProbability || fileCount == 0 {
		link := ""
		if fileCount == 0 || rng.Intn(2) == 0 {
			link = referenceLink(scope, kind, index)
		}
		uploads = append(uploads, Upload{
			Scope:      scope,
			Kind:       kind,
			FolderName: name,
			Descriptor: types.LinkOnly(link),
		})
	}

	return uploads
}

// generateFile creates a file entry with a random size and an upload date
// up to maxAgeDays before now
func generateFile(kind types.Kind, index int, rng *RNG, cfg *types.Config, now time.Time) types.FileEntry {
	var name string
	var size int64
	if kind.IsVideo() {
		name = fmt.Sprintf("lecture_%d.mp4", index)
		size = minFileBytes + rng.Int63n(maxVideoBytes)
	} else {
		name = fmt.Sprintf("notes_%d.pdf", index)
		size = minFileBytes + rng.Int63n(maxDocumentBytes)
	}

	uploaded := now.AddDate(0, 0, -rng.Intn(maxAgeDays))
	return types.FileEntry{
		Name: name,
		Size: ui.FormatSize(size),
		Date: uploaded.Format(cfg.Paths.DateLayout),
		Type: kind,
	}
}

func referenceLink(scope types.Scope, kind types.Kind, index int) string {
	return fmt.Sprintf("https://resources.eduplatform.example/%s/%s/chapter-%d",
		url.PathEscape(scope.String()), kind, index)
}

// GenerateAll generates the uploads of every catalog scope and kind, in
// catalog order. The same seed always yields the same uploads.
func GenerateAll(cfg *types.Config, now time.Time) ([]Upload, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	rng := NewRNG(cfg.Seed.Seed)
	var uploads []Upload
	for _, scope := range Scopes() {
		for _, kind := range types.Kinds {
			for i := 0; i < cfg.Seed.Folders; i++ {
				uploads = append(uploads, GenerateFolder(scope, kind, i+1, rng, cfg, now)...)
			}
		}
	}
	return uploads, nil
}

// Scopes lists every (standard, board) pair of the catalog
func Scopes() []types.Scope {
	var scopes []types.Scope
	for _, std := range catalog.Standards() {
		if len(std.Boards) == 0 {
			scopes = append(scopes, types.Scope{Standard: std.ID})
			continue
		}
		for _, board := range std.Boards {
			scopes = append(scopes, types.Scope{Standard: std.ID, Board: board})
		}
	}
	return scopes
}

// Seed writes generated sample content through store and returns the
// number of uploads applied
func Seed(store Uploader, cfg *types.Config, now time.Time) (int, error) {
	uploads, err := GenerateAll(cfg, now)
	if err != nil {
		return 0, err
	}

	for i, u := range uploads {
		if err := store.ApplyUpload(u.Scope, u.Kind, u.FolderName, u.Descriptor); err != nil {
			return i, fmt.Errorf("failed to seed %s/%s/%s: %w", u.Scope, u.Kind, u.FolderName, err)
		}
	}
	return len(uploads), nil
}

// ValidateConfig validates the generator configuration
func ValidateConfig(cfg *types.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if cfg.Seed.Folders < 0 {
		return fmt.Errorf("invalid folder count: %d", cfg.Seed.Folders)
	}
	if cfg.Seed.MaxFiles < 0 {
		return fmt.Errorf("invalid max files: %d", cfg.Seed.MaxFiles)
	}
	if cfg.Paths.DateLayout == "" {
		return fmt.Errorf("date layout cannot be empty")
	}
	return nil
}
