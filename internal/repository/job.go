package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/kaamwala/kaamwala/internal/models"
)

const (
	// JobOpenStatus is the initial status of every posted job.
	JobOpenStatus = "open"

	// JobAssignedStatus indicates that a worker has accepted the job.
	// There is no transition out of this status.
	JobAssignedStatus = "assigned"
)

type JobRepository interface {
	Insert(job *models.Job) (int64, error)
	GetOne(id int64) (*models.Job, bool, error)
	Accept(jobID, workerID int64) (bool, error)
	GetAllOpen() ([]models.OpenJob, error)
	GetAllByCustomer(customerID int64) ([]models.Job, error)
}

type JobRepositoryImpl struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (repo *JobRepositoryImpl) Insert(job *models.Job) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO jobs (customer_id, title, description, budget, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query,
		job.CustomerID,
		job.Title,
		job.Description,
		job.Budget,
		job.Location,
	)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repo *JobRepositoryImpl) GetOne(id int64) (*models.Job, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var job models.Job

	query := `SELECT * FROM jobs WHERE id = $1`

	err := repo.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &job, true, err
}

// Accept performs the single valid lifecycle transition, open -> assigned.
// The status guard in the WHERE clause makes the update a compare-and-swap
// evaluated by the database: under concurrent accept attempts exactly one
// caller sees an affected row. A false return means the job does not exist
// or has already been assigned; the two cases are indistinguishable.
func (repo *JobRepositoryImpl) Accept(jobID, workerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := `
		UPDATE jobs SET status = $1, worker_id = $2
		WHERE id = $3 AND status = $4`

	result, err := repo.db.ExecContext(ctx, query, JobAssignedStatus, workerID, jobID, JobOpenStatus)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (repo *JobRepositoryImpl) GetAllOpen() ([]models.OpenJob, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var jobs []models.OpenJob

	query := `
		SELECT
			j.id, j.title, j.description, j.budget, j.location, j.created_at,
			c.full_name AS customer_name,
			c.phone AS customer_phone,
			c.profile_pic AS customer_pic
		FROM jobs AS j
		INNER JOIN customers AS c ON j.customer_id = c.id
		WHERE j.status = $1
		ORDER BY j.created_at DESC`

	err := repo.db.SelectContext(ctx, &jobs, query, JobOpenStatus)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (repo *JobRepositoryImpl) GetAllByCustomer(customerID int64) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var jobs []models.Job

	query := `SELECT * FROM jobs WHERE customer_id = $1 ORDER BY created_at DESC`

	err := repo.db.SelectContext(ctx, &jobs, query, customerID)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}
