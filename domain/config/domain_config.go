package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Graph constraints
	MaxNodesPerGraph int
	MaxEdgesPerGraph int

	// Proposal constraints
	MaxParentsPerProposal int

	// Traversal limits
	DefaultTraversalDepth int
	MaxTraversalDepth     int

	// Insight detection thresholds (compression ratio boundaries)
	MajorInsightRatio    float64
	EpiphanyRatio        float64
	ParadigmShiftRatio   float64
	DisparateSurfaceCost float64
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerGraph: 10000,
		MaxEdgesPerGraph: 50000,

		MaxParentsPerProposal: 50,

		DefaultTraversalDepth: 10,
		MaxTraversalDepth:     100,

		MajorInsightRatio:    2.0,
		EpiphanyRatio:        5.0,
		ParadigmShiftRatio:   10.0,
		DisparateSurfaceCost: 10.0,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxNodesPerGraph = 100000
	config.MaxEdgesPerGraph = 500000

	return config
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More restrictive limits for production
	config.MaxNodesPerGraph = 5000
	config.MaxEdgesPerGraph = 25000
	config.MaxParentsPerProposal = 30

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
