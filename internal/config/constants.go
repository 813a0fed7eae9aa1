package config

import "time"

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	BatchQueryTimeout   = 60 * time.Second
	NetworkDialTimeout  = 5 * time.Second
	ReconcileTimeout    = 30 * time.Minute

	// Connection retry
	MaxConnectElapsed = 30 * time.Second

	// Cache settings
	CacheSize = 10000
)

// Engine defaults
const (
	DefaultBatchSize         = 50
	DefaultWorkers           = 5
	DefaultVolumeFloor       = 6
	DefaultReconcileInterval = 15 * time.Minute
	DefaultCriteriaPerTick   = 100
	DefaultListingSourceType = "EBAY"
	DefaultSearchBaseURL     = "https://www.ebay.co.uk/sch/i.html"
)
