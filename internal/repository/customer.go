package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kaamwala/kaamwala/internal/models"
)

type CustomerRepository interface {
	Insert(customer *models.Customer) (int64, error)
	GetOne(id int64) (*models.Customer, bool, error)
	GetDocument(id int64, field string) ([]byte, bool, error)
	UpdateDocument(id int64, field string, reference []byte) (bool, error)
	ClearDocument(id int64, field string) (bool, error)
	HasDocumentField(field string) bool
}

type CustomerRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &CustomerRepositoryImpl{db: db}
}

func (repo *CustomerRepositoryImpl) Insert(customer *models.Customer) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO customers (full_name, cnic, phone, city, cnic_front, cnic_back, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := repo.db.GetContext(ctx, &id, query,
		customer.FullName,
		customer.Cnic,
		customer.Phone,
		customer.City,
		customer.CnicFront,
		customer.CnicBack,
		customer.ProfilePic,
	)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (repo *CustomerRepositoryImpl) GetOne(id int64) (*models.Customer, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var customer models.Customer

	query := `SELECT * FROM customers WHERE id = $1`

	err := repo.db.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return &customer, true, err
}

func (repo *CustomerRepositoryImpl) HasDocumentField(field string) bool {
	_, ok := customerDocumentColumns[field]
	return ok
}

func (repo *CustomerRepositoryImpl) GetDocument(id int64, field string) ([]byte, bool, error) {
	column, ok := customerDocumentColumns[field]
	if !ok {
		return nil, false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var reference []byte

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, column)

	err := repo.db.GetContext(ctx, &reference, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	return reference, true, err
}

func (repo *CustomerRepositoryImpl) UpdateDocument(id int64, field string, reference []byte) (bool, error) {
	column, ok := customerDocumentColumns[field]
	if !ok {
		return false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE customers SET %s = $1 WHERE id = $2`, column)

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

func (repo *CustomerRepositoryImpl) ClearDocument(id int64, field string) (bool, error) {
	column, ok := customerDocumentColumns[field]
	if !ok {
		return false, ErrUnknownDocumentField
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`UPDATE customers SET %s = NULL WHERE id = $1`, column)

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
