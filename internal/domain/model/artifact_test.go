package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
)

func fittedArtifact(t *testing.T) *Artifact {
	t.Helper()
	x, y := separableData()
	m := NewLogisticRegression(DefaultLogisticRegressionParams())
	require.NoError(t, m.Fit(x, y))
	return NewArtifact(m, dataset.NewSchema([]string{"books", "electronics"}))
}

func TestArtifact_SaveLoad(t *testing.T) {
	t.Run("round-trips through disk", func(t *testing.T) {
		artifact := fittedArtifact(t)
		path := filepath.Join(t.TempDir(), "models", "return_model.json")

		require.NoError(t, artifact.Save(path))

		loaded, err := LoadArtifact(path)
		require.NoError(t, err)
		assert.Equal(t, artifact.Algorithm, loaded.Algorithm)
		assert.Equal(t, artifact.Model.Weights, loaded.Model.Weights)
		assert.Equal(t, artifact.Model.Bias, loaded.Model.Bias)
		assert.True(t, artifact.Schema.Matches(loaded.Schema))

		// Loaded model scores exactly like the original.
		x, _ := separableData()
		for _, row := range x {
			assert.Equal(t, artifact.Model.PredictRow(row), loaded.Model.PredictRow(row))
		}
	})

	t.Run("missing file is a corrupt-artifact error", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, dataset.ErrArtifactCorrupt)
	})

	t.Run("undecodable content is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, dataset.ErrArtifactCorrupt)
	})

	t.Run("unfitted model is rejected", func(t *testing.T) {
		artifact := &Artifact{
			Algorithm: AlgorithmLogisticRegression,
			Model:     NewLogisticRegression(DefaultLogisticRegressionParams()),
			Schema:    dataset.NewSchema([]string{"books"}),
		}
		path := filepath.Join(t.TempDir(), "unfitted.json")
		require.NoError(t, artifact.Save(path))

		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, dataset.ErrArtifactCorrupt)
	})

	t.Run("schema version mismatch is rejected", func(t *testing.T) {
		artifact := fittedArtifact(t)
		artifact.Schema.Version = dataset.SchemaVersion + 1
		path := filepath.Join(t.TempDir(), "stale.json")
		require.NoError(t, artifact.Save(path))

		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, dataset.ErrSchemaMismatch)
	})
}
