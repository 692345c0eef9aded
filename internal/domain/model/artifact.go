package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

// Artifact is the persisted training output: the fitted classifier together
// with the frozen schema it was trained against. Consumers treat it as
// read-only; retraining replaces the file wholesale.
type Artifact struct {
	Algorithm string                   `json:"algorithm"`
	Model     *LogisticRegression      `json:"model"`
	Schema    dataset.Schema           `json:"schema"`
	Params    LogisticRegressionParams `json:"params"`
	TrainedAt time.Time                `json:"trained_at"`
}

// NewArtifact bundles a fitted classifier with its schema.
func NewArtifact(m *LogisticRegression, schema dataset.Schema) *Artifact {
	return &Artifact{
		Algorithm: AlgorithmLogisticRegression,
		Model:     m,
		Schema:    schema,
		Params:    m.Params,
		TrainedAt: time.Now().UTC(),
	}
}

// Classifier returns the fitted model behind the capability interface.
func (a *Artifact) Classifier() Classifier {
	return a.Model
}

// Save writes the artifact bundle to path, creating parent directories.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model artifact %s: %w", path, err)
	}
	return nil
}

// LoadArtifact reads and validates an artifact bundle. A missing file,
// undecodable content, an unfitted model, or a schema-version mismatch all
// fail before any prediction is attempted.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dataset.ErrArtifactCorrupt, path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dataset.ErrArtifactCorrupt, path, err)
	}
	if a.Algorithm != AlgorithmLogisticRegression {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", dataset.ErrArtifactCorrupt, a.Algorithm)
	}
	if a.Model == nil || !a.Model.Fitted() {
		return nil, fmt.Errorf("%w: %s: artifact carries no fitted weights", dataset.ErrArtifactCorrupt, path)
	}
	if a.Schema.Version != dataset.SchemaVersion {
		return nil, fmt.Errorf("%w: artifact schema version %d, expected %d",
			dataset.ErrSchemaMismatch, a.Schema.Version, dataset.SchemaVersion)
	}
	return &a, nil
}
