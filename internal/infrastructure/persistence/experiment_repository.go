package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExperimentRun is one row of the append-only experiment log: run identity,
// the hyperparameters used, and the evaluation metrics.
type ExperimentRun struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ExperimentName string    `gorm:"size:128;index" json:"experiment_name"`
	ModelType      string    `gorm:"size:64" json:"model_type"`
	Params         string    `gorm:"type:text" json:"params"` // JSON-encoded hyperparameters
	Accuracy       float64   `json:"accuracy"`
	F1Score        float64   `json:"f1_score"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName maps the model to its table
func (ExperimentRun) TableName() string { return "experiment_runs" }

// GormExperimentRepository implements the experiment log using GORM. The
// log is append-only: runs are created and listed, never updated or deleted.
type GormExperimentRepository struct {
	db *gorm.DB
}

// NewGormExperimentRepository creates a new GormExperimentRepository
func NewGormExperimentRepository(db *gorm.DB) *GormExperimentRepository {
	return &GormExperimentRepository{db: db}
}

// Append records one run, assigning its id and timestamp.
func (r *GormExperimentRepository) Append(ctx context.Context, run *ExperimentRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// List returns every run of an experiment, newest first.
func (r *GormExperimentRepository) List(ctx context.Context, experimentName string) ([]ExperimentRun, error) {
	var runs []ExperimentRun
	err := r.db.WithContext(ctx).
		Where("experiment_name = ?", experimentName).
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Latest returns the most recent run of an experiment, or nil when the log
// is empty.
func (r *GormExperimentRepository) Latest(ctx context.Context, experimentName string) (*ExperimentRun, error) {
	var run ExperimentRun
	err := r.db.WithContext(ctx).
		Where("experiment_name = ?", experimentName).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
