package middleware

import "github.com/prometheus/client_golang/prometheus"

func HTTPRequestsTotal() *prometheus.CounterVec {
	return httpRequestsTotal
}
