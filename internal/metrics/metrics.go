package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_collection_run_duration_seconds",
			Help:    "Duration of each collection run in seconds.",
			Buckets: []float64{5, 30, 60, 300, 900, 1800},
		},
	)
	RunStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "bot_collection_step_duration_seconds",
			Help:       "Duration of each step in the collection run.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	FetchedVacanciesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_vacancies_fetched_total",
			Help: "Total number of vacancies fetched, by source.",
		},
		[]string{"source"},
	)
	SentVacanciesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_vacancies_sent_total",
			Help: "Total number of vacancy notifications sent.",
		},
	)
	GroupCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_group_cache_hits_total",
			Help: "Total number of group fetches served from cache.",
		},
	)
	GroupCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_group_cache_misses_total",
			Help: "Total number of group fetches that went to the sources.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(RunStepDuration)
	prometheus.MustRegister(FetchedVacanciesCounter)
	prometheus.MustRegister(SentVacanciesCounter)
	prometheus.MustRegister(GroupCacheHits)
	prometheus.MustRegister(GroupCacheMisses)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
