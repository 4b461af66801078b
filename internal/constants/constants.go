package constants

// Context keys
const (
	ContextKeyIdentity = "identity"
)

// Authentication
const (
	MinPasswordLength = 6
	BcryptCost        = 10
)

// Uploads
const (
	MaxTaskDocuments = 3
)
