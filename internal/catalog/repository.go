package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"letsstretch/internal/core/model"

	"gopkg.in/yaml.v3"
)

// ErrContentUnavailable indicates the stretch content could not be loaded.
var ErrContentUnavailable = errors.New("stretch content unavailable")

var (
	// ErrNotFound indicates the catalog source does not exist.
	ErrNotFound = fmt.Errorf("%w: catalog not found", ErrContentUnavailable)
	// ErrMalformed indicates the catalog source could not be decoded or validated.
	ErrMalformed = fmt.Errorf("%w: malformed catalog", ErrContentUnavailable)
)

//go:embed data/stretches.yaml
var builtinCatalog []byte

// Repository is a read-only collection of stretches.
type Repository struct {
	stretches []model.Stretch
	rng       *rand.Rand
}

// Option configures a Repository.
type Option func(*Repository)

// WithRand sets the random source used for random selection.
func WithRand(rng *rand.Rand) Option {
	return func(repository *Repository) {
		repository.rng = rng
	}
}

// New creates a repository over the given stretches.
func New(stretches []model.Stretch, options ...Option) *Repository {
	repository := &Repository{
		stretches: append([]model.Stretch(nil), stretches...),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(repository)
	}
	return repository
}

// Default loads the built-in catalog.
func Default(options ...Option) (*Repository, error) {
	return Load(builtinCatalog, options...)
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string, options ...Option) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Load(data, options...)
}

// Load decodes a YAML or JSON list of stretches.
func Load(data []byte, options ...Option) (*Repository, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var stretches []model.Stretch
	if err := decoder.Decode(&stretches); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate(stretches); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return New(stretches, options...), nil
}

func validate(stretches []model.Stretch) error {
	seen := make(map[string]struct{}, len(stretches))
	for index, stretch := range stretches {
		if stretch.ID == "" {
			return fmt.Errorf("stretch %d: missing id", index)
		}
		if _, ok := seen[stretch.ID]; ok {
			return fmt.Errorf("stretch %q: duplicate id", stretch.ID)
		}
		seen[stretch.ID] = struct{}{}
		if stretch.Name == "" {
			return fmt.Errorf("stretch %q: missing name", stretch.ID)
		}
		if !stretch.Category.Valid() {
			return fmt.Errorf("stretch %q: unknown category %q", stretch.ID, stretch.Category)
		}
		if stretch.DurationSeconds < 0 {
			return fmt.Errorf("stretch %q: negative duration", stretch.ID)
		}
	}
	return nil
}

// All returns every stretch in catalog order.
func (repository *Repository) All() []model.Stretch {
	return append([]model.Stretch(nil), repository.stretches...)
}

// Len returns the number of stretches.
func (repository *Repository) Len() int {
	return len(repository.stretches)
}

// ByCategory returns the stretches tagged with category.
func (repository *Repository) ByCategory(category model.Category) []model.Stretch {
	return repository.filter(func(stretch model.Stretch) bool {
		return stretch.Category == category
	})
}

// ByTargetArea returns the stretches for the given body area.
func (repository *Repository) ByTargetArea(targetArea string) []model.Stretch {
	return repository.filter(func(stretch model.Stretch) bool {
		return stretch.TargetArea == targetArea
	})
}

// Random draws one stretch. With no categories every stretch is eligible.
func (repository *Repository) Random(categories ...model.Category) (model.Stretch, bool) {
	candidates := repository.inCategories(categories)
	if len(candidates) == 0 {
		return model.Stretch{}, false
	}
	return candidates[repository.rng.Intn(len(candidates))], true
}

// RandomN draws up to count distinct stretches in random order.
func (repository *Repository) RandomN(count int, categories ...model.Category) []model.Stretch {
	candidates := repository.inCategories(categories)
	if count <= 0 || len(candidates) == 0 {
		return nil
	}
	repository.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

// Cycled returns the stretch at index modulo the filtered count, and the index
// that follows it.
func (repository *Repository) Cycled(index int, categories ...model.Category) (model.Stretch, int, bool) {
	candidates := repository.inCategories(categories)
	if len(candidates) == 0 {
		return model.Stretch{}, 0, false
	}
	safe := index % len(candidates)
	if safe < 0 {
		safe += len(candidates)
	}
	return candidates[safe], (safe + 1) % len(candidates), true
}

func (repository *Repository) inCategories(categories []model.Category) []model.Stretch {
	if len(categories) == 0 {
		return repository.All()
	}
	allowed := make(map[model.Category]struct{}, len(categories))
	for _, category := range categories {
		allowed[category] = struct{}{}
	}
	return repository.filter(func(stretch model.Stretch) bool {
		_, ok := allowed[stretch.Category]
		return ok
	})
}

func (repository *Repository) filter(keep func(model.Stretch) bool) []model.Stretch {
	var matched []model.Stretch
	for _, stretch := range repository.stretches {
		if keep(stretch) {
			matched = append(matched, stretch)
		}
	}
	return matched
}
