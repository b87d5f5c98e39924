// Package constants provides a centralized location for the fixed values
// used throughout teamping.
package constants

// GitHub API paging
const (
	// SearchPerPage is the page size requested from the search endpoint.
	// Only the first page is read, so this is the maximum the API allows.
	SearchPerPage = 100

	// MembersPerPage is the page size used when listing team members.
	MembersPerPage = 100
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)

// Run outcome messages
const (
	// NoItemsMessage is reported when neither search found anything.
	NoItemsMessage = "No new team pings."

	// DoneMessage is reported when every matched item was processed.
	DoneMessage = "All team pings added to the project board."

	// DryRunMessage is reported when a dry run completes.
	DryRunMessage = "Dry run complete, no cards or comments were created."
)

// Local files
const (
	// LocalConfigFile is the config file looked up in the working directory.
	LocalConfigFile = ".teamping.yaml"

	// DotEnvFile is loaded into the environment before configuration.
	DotEnvFile = ".env"
)
