package features

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/infrastructure/storage"
)

// Splitter partitions a feature table into train and held-out sets with a
// uniform seeded shuffle. Same seed and same input order always produce the
// same partitions; there is no temporal ordering guarantee.
type Splitter struct {
	TestFraction float64
	Seed         int64
}

// NewSplitter creates a Splitter. A non-positive fraction falls back to the
// conventional 0.2 hold-out.
func NewSplitter(testFraction float64, seed int64) *Splitter {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = 0.2
	}
	return &Splitter{TestFraction: testFraction, Seed: seed}
}

// Split shuffles row indices with the fixed seed and cuts the shuffled
// order at round(n*(1-fraction)) train rows; the remainder is held out.
func (s *Splitter) Split(rows []dataset.FeatureRow) (train, test []dataset.FeatureRow) {
	n := len(rows)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(s.Seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	trainSize := int(math.Round(float64(n) * (1 - s.TestFraction)))
	train = make([]dataset.FeatureRow, 0, trainSize)
	test = make([]dataset.FeatureRow, 0, n-trainSize)
	for pos, idx := range indices {
		if pos < trainSize {
			train = append(train, rows[idx])
		} else {
			test = append(test, rows[idx])
		}
	}
	return train, test
}

// WritePartitions persists both partitions under processedDir. Partitions
// are immutable by convention: re-splitting is the only way to change
// membership, and it rewrites both files.
func (s *Splitter) WritePartitions(processedDir string, train, test []dataset.FeatureRow) error {
	if err := storage.WriteTable(filepath.Join(processedDir, TrainFile), train); err != nil {
		return err
	}
	return storage.WriteTable(filepath.Join(processedDir, TestFile), test)
}

// SaveSchema persists the frozen schema next to the partitions so a later
// training run can freeze the same contract into its artifact.
func SaveSchema(processedDir string, schema dataset.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	return os.WriteFile(filepath.Join(processedDir, SchemaFile), data, 0o644)
}

// LoadSchema reads the schema written by SaveSchema.
func LoadSchema(processedDir string) (dataset.Schema, error) {
	path := filepath.Join(processedDir, SchemaFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Schema{}, fmt.Errorf("%w: %s", dataset.ErrMissingSource, path)
	}
	var schema dataset.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return dataset.Schema{}, fmt.Errorf("%w: %s: %v", dataset.ErrArtifactCorrupt, path, err)
	}
	if schema.Version != dataset.SchemaVersion {
		return dataset.Schema{}, fmt.Errorf("%w: schema version %d, want %d",
			dataset.ErrSchemaMismatch, schema.Version, dataset.SchemaVersion)
	}
	return schema, nil
}
