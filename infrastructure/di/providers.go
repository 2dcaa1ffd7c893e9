package di

import (
	"go.uber.org/zap"

	"uavi-backend/application/services"
	domainconfig "uavi-backend/domain/config"
	"uavi-backend/domain/core/kernel"
	domainservices "uavi-backend/domain/core/services"
	"uavi-backend/infrastructure/config"
	"uavi-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Kernel  *kernel.Kernel
	Service *services.KernelService
	Metrics *observability.Metrics
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig derives the domain configuration from the
// environment, letting env limits override the defaults.
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	dc := domainconfig.LoadDomainConfig(cfg.Environment)
	dc.DefaultTraversalDepth = cfg.DefaultTraversalDepth
	if cfg.MaxNodes > 0 {
		dc.MaxNodesPerGraph = cfg.MaxNodes
	}
	if cfg.MaxEdges > 0 {
		dc.MaxEdgesPerGraph = cfg.MaxEdges
	}
	return dc
}

// ProvideKernel creates the graph kernel with the default inspector chain
func ProvideKernel(dc *domainconfig.DomainConfig) *kernel.Kernel {
	return kernel.New(dc)
}

// ProvideInsightDetector creates the insight detector over the kernel
func ProvideInsightDetector(dc *domainconfig.DomainConfig, k *kernel.Kernel) *domainservices.InsightDetector {
	return domainservices.NewInsightDetector(dc, k)
}

// ProvideMetrics creates the prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideKernelService creates the application service facade
func ProvideKernelService(
	k *kernel.Kernel,
	insight *domainservices.InsightDetector,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *services.KernelService {
	return services.NewKernelService(k, insight, logger, metrics)
}
