package repository

import (
	"errors"
)

// Public names of the document fields accepted by the generic
// update/delete document endpoints.
const (
	DocumentFieldProfilePic  = "profilePic"
	DocumentFieldCnicFront   = "cnicFront"
	DocumentFieldCnicBack    = "cnicBack"
	DocumentFieldWorkCert    = "workCert"
	DocumentFieldLicense     = "license"
	DocumentFieldLicenseBack = "licenseBack"
)

// ErrUnknownDocumentField is returned when a document operation names a
// field outside the entity's column map.
var ErrUnknownDocumentField = errors.New("unknown document field")

// Field names are never interpolated into SQL directly. Each entity owns a
// fixed map from public field name to column name, and the map doubles as
// the allow-list: lookups fail closed before any statement is built.
var customerDocumentColumns = map[string]string{
	DocumentFieldProfilePic: "profile_pic",
	DocumentFieldCnicFront:  "cnic_front",
	DocumentFieldCnicBack:   "cnic_back",
}

var workerDocumentColumns = map[string]string{
	DocumentFieldProfilePic:  "profile_pic",
	DocumentFieldCnicFront:   "cnic_front",
	DocumentFieldCnicBack:    "cnic_back",
	DocumentFieldWorkCert:    "work_cert",
	DocumentFieldLicense:     "license",
	DocumentFieldLicenseBack: "license_back",
}
