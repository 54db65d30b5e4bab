package cloudenv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	credentialResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_credential_resolutions_total",
			Help: "Credential resolutions by outcome",
		},
		[]string{"outcome"},
	)

	descriptorLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_services_descriptor_loads_total",
			Help: "Services descriptor loads by source",
		},
		[]string{"source"},
	)
)

func recordResolution(outcome string) {
	credentialResolutions.WithLabelValues(outcome).Inc()
}

func recordDescriptorLoad(source Source) {
	descriptorLoads.WithLabelValues(source.String()).Inc()
}
