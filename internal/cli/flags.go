package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Output     string
	OutputDir  string
	BatchFile  string
	Force      bool
	Archive    bool
	ListModels bool
	Verbose    bool

	// Translation flags
	Language    string
	Provider    string
	Model       string
	BaseURL     string
	Concurrency int
	Strict      bool
	Timeout     time.Duration

	// Serve flags
	Addr string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Language:    "Arabic",
		Provider:    "openai",
		Concurrency: 4,
		Timeout:     5 * time.Minute,
		Addr:        ":8000",
	}
}
