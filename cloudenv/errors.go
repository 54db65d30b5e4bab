package cloudenv

import "errors"

// Sentinel errors returned by credential resolution. Returned errors wrap
// one of these with the offending spec; test with errors.Is.
var (
	// ErrInvalidSpec means a spec lacks the fields its type needs.
	ErrInvalidSpec = errors.New("invalid service spec")
	// ErrInvalidSpecType means a spec has an unknown type.
	ErrInvalidSpecType = errors.New("invalid spec type")
	// ErrMultipleInstances means one spec matched more than one instance.
	ErrMultipleInstances = errors.New("multiple services found for cf spec")
	// ErrInvalidCredentials means a credentials variable is not a JSON object.
	ErrInvalidCredentials = errors.New("invalid creds environment variable")
	// ErrMultipleServices means more than one spec resolved.
	ErrMultipleServices = errors.New("multiple services found")
	// ErrNoService means a required lookup found nothing.
	ErrNoService = errors.New("no service found")
)
