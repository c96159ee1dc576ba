package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	borrowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booklend_borrows_processed",
		Help: "The number of borrow requests by result",
	}, []string{"result"})
	returnsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booklend_returns_processed",
		Help: "The number of return requests by result",
	}, []string{"result"})
	dbErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booklend_db_errors",
		Help: "The number of errors encountered when using the db",
	}, []string{"type"})
)
