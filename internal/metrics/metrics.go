package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "trivia"

// Metrics holds the application collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	quizQuestions   *prometheus.CounterVec
	quizExhausted   *prometheus.CounterVec
	questionsAdded  prometheus.Counter
	questionsGone   prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quizQuestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_questions_served_total",
			Help:      "Quiz questions served by category filter.",
		}, []string{"category"}),
		quizExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_exhausted_total",
			Help:      "Quiz rounds that ran out of questions, by category filter.",
		}, []string{"category"}),
		questionsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_created_total",
			Help:      "Questions created through the API.",
		}),
		questionsGone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_deleted_total",
			Help:      "Questions deleted through the API.",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.quizQuestions,
		m.quizExhausted,
		m.questionsAdded,
		m.questionsGone,
	)
	return m
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) QuestionServed(category string) {
	if m == nil {
		return
	}
	m.quizQuestions.WithLabelValues(category).Inc()
}

func (m *Metrics) QuizExhausted(category string) {
	if m == nil {
		return
	}
	m.quizExhausted.WithLabelValues(category).Inc()
}

func (m *Metrics) QuestionCreated() {
	if m == nil {
		return
	}
	m.questionsAdded.Inc()
}

func (m *Metrics) QuestionDeleted() {
	if m == nil {
		return
	}
	m.questionsGone.Inc()
}
