package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Constraint names declared in the migrations.
const (
	constraintCompanySubdomain = "companies_subdomain_key"
	constraintDiscount         = "products_discount_check"
	constraintPlacement        = "products_ar_placement_check"
	constraintProductCompany   = "products_company_id_fkey"
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001":
			return ErrorClassSerialization
		case "40P01":
			return ErrorClassDeadlock
		case "55P03":
			return ErrorClassTransient
		case "23505", "23503", "23502", "23514":
			return ErrorClassPermanent
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrorClassPermanent
	}

	return ErrorClassPermanent
}

func IsRetryable(err error) bool {
	class := ClassifyError(err)
	return class == ErrorClassTransient ||
		class == ErrorClassDeadlock ||
		class == ErrorClassSerialization
}

// TranslateConstraint maps constraint violations the schema declares onto
// domain errors. Other errors are returned unchanged.
func TranslateConstraint(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch {
	case pqErr.Code == codeUniqueViolation && pqErr.Constraint == constraintCompanySubdomain:
		return ErrSubdomainTaken
	case pqErr.Code == codeCheckViolation && pqErr.Constraint == constraintDiscount:
		return ErrInvalidDiscount
	case pqErr.Code == codeCheckViolation && pqErr.Constraint == constraintPlacement:
		return ErrInvalidPlacement
	case pqErr.Code == codeForeignKeyViolation && pqErr.Constraint == constraintProductCompany:
		return ErrCompanyNotFound
	}
	return err
}

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrARRequestNotFound = errors.New("ar request not found")
	ErrSubdomainTaken    = errors.New("subdomain already taken")
	ErrInvalidDiscount   = errors.New("discount price must be positive and not exceed price")
	ErrInvalidPlacement  = errors.New("ar placement must be floor, wall or table")
	ErrInvalidTransition = errors.New("invalid ar request status transition")
	ErrInvalidStatus     = errors.New("invalid status")
)
