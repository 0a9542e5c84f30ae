package models

// Categories
const (
	// CategoryUncategorized marks a transaction that needs manual review.
	CategoryUncategorized = "Sem categoria"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDataFile   = 0644
	PermissionDirectory  = 0750
)
