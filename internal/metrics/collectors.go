package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// CostSource exposes accumulated per-model usage for scraping.
type CostSource interface {
	CostsByModel() map[string]float64
	CallsByModel() map[string]int64
}

// CustomCollector reports state that lives outside of counters:
// accumulated cost per model and the Redis connection pool.
type CustomCollector struct {
	costs CostSource
	redis *redis.Client // optional

	totalCost     *prometheus.Desc
	totalCalls    *prometheus.Desc
	redisConns    *prometheus.Desc
	redisTimeouts *prometheus.Desc
}

// NewCustomCollector creates a new custom metrics collector. redisClient may be nil.
func NewCustomCollector(costs CostSource, redisClient *redis.Client) *CustomCollector {
	return &CustomCollector{
		costs: costs,
		redis: redisClient,

		totalCost: prometheus.NewDesc(
			namespace+"_model_cost_usd_current",
			"Estimated USD spent per model since process start",
			[]string{"model"}, nil,
		),
		totalCalls: prometheus.NewDesc(
			namespace+"_model_calls_current",
			"Successful generations per model since process start",
			[]string{"model"}, nil,
		),
		redisConns: prometheus.NewDesc(
			namespace+"_redis_pool_connections",
			"Redis pool connections by state",
			[]string{"state"}, // state: total|idle|stale
			nil,
		),
		redisTimeouts: prometheus.NewDesc(
			namespace+"_redis_pool_timeouts_total",
			"Times a Redis connection could not be obtained from the pool",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CustomCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalCost
	ch <- c.totalCalls
	ch <- c.redisConns
	ch <- c.redisTimeouts
}

// Collect implements prometheus.Collector
func (c *CustomCollector) Collect(ch chan<- prometheus.Metric) {
	c.collectCosts(ch)
	c.collectRedisPool(ch)
}

func (c *CustomCollector) collectCosts(ch chan<- prometheus.Metric) {
	if c.costs == nil {
		return
	}

	for model, cost := range c.costs.CostsByModel() {
		ch <- prometheus.MustNewConstMetric(c.totalCost, prometheus.GaugeValue, cost, model)
	}
	for model, calls := range c.costs.CallsByModel() {
		ch <- prometheus.MustNewConstMetric(c.totalCalls, prometheus.GaugeValue, float64(calls), model)
	}
}

func (c *CustomCollector) collectRedisPool(ch chan<- prometheus.Metric) {
	if c.redis == nil {
		return
	}

	stats := c.redis.PoolStats()
	ch <- prometheus.MustNewConstMetric(c.redisConns, prometheus.GaugeValue, float64(stats.TotalConns), "total")
	ch <- prometheus.MustNewConstMetric(c.redisConns, prometheus.GaugeValue, float64(stats.IdleConns), "idle")
	ch <- prometheus.MustNewConstMetric(c.redisConns, prometheus.GaugeValue, float64(stats.StaleConns), "stale")
	ch <- prometheus.MustNewConstMetric(c.redisTimeouts, prometheus.CounterValue, float64(stats.Timeouts))
}
