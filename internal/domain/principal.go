package domain

import (
	"fmt"

	"go-interview-booking/pkg/apperror"
)

// Principal is the authenticated caller resolved by the HTTP boundary
type Principal struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Operation is a mutating or reading action checked by Authorize
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpExport Operation = "export"
)

// EntityKind names the entity an operation targets
type EntityKind string

const (
	KindCompany   EntityKind = "company"
	KindPosition  EntityKind = "position"
	KindInterview EntityKind = "interview"
)

// Authorize decides whether p may perform op on an entity of the given kind.
// ownerID is the user field of the target record and only matters for interviews.
// It returns nil on Allow and an unauthorized AppError on Deny.
func Authorize(op Operation, kind EntityKind, p Principal, ownerID string) error {
	if p.ID == "" {
		return apperror.Unauthorized("Not authorized to access this route")
	}

	switch kind {
	case KindCompany, KindPosition:
		if op == OpRead || p.IsAdmin() {
			return nil
		}
		return roleDenied(p)

	case KindInterview:
		switch op {
		case OpCreate:
			if p.Role == RoleAdmin || p.Role == RoleUser {
				return nil
			}
			return roleDenied(p)
		case OpExport:
			if p.IsAdmin() {
				return nil
			}
			return roleDenied(p)
		default:
			if p.IsAdmin() || p.ID == ownerID {
				return nil
			}
			return apperror.Unauthorized(fmt.Sprintf("User %s is not authorized to %s this interview", p.ID, op))
		}
	}

	return roleDenied(p)
}

// InterviewScope returns the listing filter the principal is allowed to see.
// Non-admins only ever see their own interviews; admins see everything, or one
// company when companyID is set.
func InterviewScope(p Principal, companyID string) InterviewFilter {
	if !p.IsAdmin() {
		return InterviewFilter{UserID: p.ID}
	}
	return InterviewFilter{CompanyID: companyID}
}

func roleDenied(p Principal) error {
	role := p.Role
	if role == "" {
		role = "unknown"
	}
	return apperror.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", role))
}
