package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomerDocumentAllowList(t *testing.T) {
	repo := NewCustomerRepository(nil)

	for _, field := range []string{DocumentFieldProfilePic, DocumentFieldCnicFront, DocumentFieldCnicBack} {
		require.True(t, repo.HasDocumentField(field), field)
	}

	// the remaining allow-listed names belong to workers only
	for _, field := range []string{DocumentFieldWorkCert, DocumentFieldLicense, DocumentFieldLicenseBack} {
		require.False(t, repo.HasDocumentField(field), field)
	}

	require.False(t, repo.HasDocumentField("password"))
	require.False(t, repo.HasDocumentField(""))
	require.False(t, repo.HasDocumentField("profile_pic; DROP TABLE customers"))
}

func TestWorkerDocumentAllowList(t *testing.T) {
	repo := NewWorkerRepository(nil)

	fields := []string{
		DocumentFieldProfilePic,
		DocumentFieldCnicFront,
		DocumentFieldCnicBack,
		DocumentFieldWorkCert,
		DocumentFieldLicense,
		DocumentFieldLicenseBack,
	}

	for _, field := range fields {
		require.True(t, repo.HasDocumentField(field), field)
	}

	require.False(t, repo.HasDocumentField("password"))
	require.False(t, repo.HasDocumentField("ProfilePic"))
}

func TestDocumentOperationsRejectUnknownFieldsBeforeSQL(t *testing.T) {
	// a nil db is safe here: unknown fields must fail closed before any
	// statement is built or executed
	customers := NewCustomerRepository(nil)
	workers := NewWorkerRepository(nil)

	_, err := customers.UpdateDocument(1, "password", []byte("x"))
	require.ErrorIs(t, err, ErrUnknownDocumentField)

	_, err = customers.ClearDocument(1, "workCert")
	require.ErrorIs(t, err, ErrUnknownDocumentField)

	_, _, err = customers.GetDocument(1, "cnic")
	require.ErrorIs(t, err, ErrUnknownDocumentField)

	_, err = workers.UpdateDocument(1, "status", []byte("x"))
	require.ErrorIs(t, err, ErrUnknownDocumentField)

	_, err = workers.ClearDocument(1, "")
	require.ErrorIs(t, err, ErrUnknownDocumentField)
}
