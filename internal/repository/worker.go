package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kaamwala/kaamwala/internal/models"
)

type WorkerRepository interface {
	Insert(worker *models.Worker) (int64, error)
	GetOne(id int64) (*models.Worker, bool, error)
	GetStatus(id int64) (bool, bool, error)
	GetDocument(id int64, field string) ([]byte, bool, error)
	UpdateDocument(id int64, field string, reference []byte) (bool, error)
	ClearDocument(id int64, field string) (bool, error)
	HasDocumentField(field string) bool
}

type WorkerRepositoryImpl struct {
	db *sqlx.DB
}

func NewWorkerRepository(db *sqlx.DB) WorkerRepository {
	return &WorkerRepositoryImpl{db: db}
}

func (repo *WorkerRepositoryImpl) Insert(worker *models.Worker) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO workers (full_name, cnic, phone, city, skill, available_hours, about,
			cnic_front, cnic_back, profile_pic, work_cert, license, license_back, worker_form_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query,
		worker.FullName,
		worker.Cnic,
		worker.Phone,
		worker.City,
		worker.Skill,
		worker.AvailableHours,
		worker.About,
		worker.CnicFront,
		worker.CnicBack,
		worker.ProfilePic,
		worker.WorkCert,
		worker.License,
		worker.LicenseBack,
	)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repo *WorkerRepositoryImpl) GetOne(id int64) (*models.Worker, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var worker models.Worker

	query := `SELECT * FROM workers WHERE id = $1`

	err := repo.db.GetContext(ctx, &worker, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &worker, true, err
}

func (repo *WorkerRepositoryImpl) GetStatus(id int64) (bool, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var completed bool

	query := `SELECT worker_form_completed FROM workers WHERE id = $1`

	err := repo.db.GetContext(ctx, &completed, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}

	return completed, true, err
}

func (repo *WorkerRepositoryImpl) HasDocumentField(field string) bool {
	_, ok := workerDocumentColumns[field]
	return ok
}

func (repo *WorkerRepositoryImpl) GetDocument(id int64, field string) ([]byte, bool, error) {
	column, ok := workerDocumentColumns[field]
	if !ok {
		return nil, false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var reference []byte

	query := fmt.Sprintf(`SELECT %s FROM workers WHERE id = $1`, column)

	err := repo.db.GetContext(ctx, &reference, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return reference, true, err
}

func (repo *WorkerRepositoryImpl) UpdateDocument(id int64, field string, reference []byte) (bool, error) {
	column, ok := workerDocumentColumns[field]
	if !ok {
		return false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE workers SET %s = $1 WHERE id = $2`, column)

	result, err := repo.db.ExecContext(ctx, query, reference, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (repo *WorkerRepositoryImpl) ClearDocument(id int64, field string) (bool, error) {
	column, ok := workerDocumentColumns[field]
	if !ok {
		return false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE workers SET %s = NULL WHERE id = $1`, column)

	result, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
