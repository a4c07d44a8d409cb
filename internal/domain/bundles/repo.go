package bundles

import (
	"context"
	"errors"
)

// Retrieval failures. Repositories wrap these with %w so callers can use
// errors.Is.
var (
	ErrNotFound      = errors.New("bundle not found")
	ErrNetwork       = errors.New("bundle source unreachable")
	ErrTimeout       = errors.New("bundle retrieval timed out")
	ErrInvalidBundle = errors.New("bundle is not valid JSON")
)

// Repository retrieves raw bundle bytes by identifier.
type Repository interface {
	Get(ctx context.Context, id string) ([]byte, error)
}

// Store is a Repository that can also be written to and enumerated.
type Store interface {
	Repository
	Put(ctx context.Context, b Record) error
	IDs(ctx context.Context) ([]string, error)
}

// Record is one stored bundle.
type Record struct {
	ID    string
	Name  string
	Order int
	Body  []byte
}

// DefaultBundleIDs are the candidates listed when none are configured.
var DefaultBundleIDs = []string{
	"eligibilityCheckReq",
	"eligibilityCheckResp",
	"preAuthReq",
	"preAuthResp",
	"claimReq",
	"claimResp",
	"insurancePlanReq",
	"insurancePlanResp",
}
