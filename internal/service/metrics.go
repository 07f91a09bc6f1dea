package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "initdata_validations_total",
			Help: "Init data validations by scheme and result kind",
		},
		[]string{"scheme", "result"},
	)
	ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "initdata_validation_duration_seconds",
			Help:    "Time spent parsing, verifying and decoding init data",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"scheme"},
	)
)

func init() {
	prometheus.MustRegister(ValidationsTotal)
	prometheus.MustRegister(ValidationDuration)
}
