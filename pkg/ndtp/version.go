package ndtp

// Version information for the ndtp module.
const (
	// ModuleVersion is the current version of the ndtp module.
	ModuleVersion = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
