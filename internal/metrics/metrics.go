// File: internal/metrics/metrics.go
// Project: EC4X Engine
// Description: Centralized metrics collection and Prometheus-compatible export
// Version: 1.0.0
// Created: 2025-01-14

package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector manages all engine metrics.
type MetricsCollector struct {
	mu sync.RWMutex

	// Transport connection metrics (internal/transport client event streams)
	totalConnections    atomic.Int64
	activeConnections   atomic.Int64
	failedConnections   atomic.Int64
	connectionDurations []time.Duration

	// House/game activity metrics
	activeHouses    atomic.Int64
	ordersSubmitted atomic.Int64
	ordersRejected  atomic.Int64
	gamesCreated    atomic.Int64

	// Turn activity metrics
	turnsAdvanced       atomic.Int64
	combatEncounters    atomic.Int64
	colonizationsMade   atomic.Int64
	housesEliminated    atomic.Int64
	fleetMovesExecuted  atomic.Int64
	prestigeEventsEmitted atomic.Int64

	// Economy metrics
	totalTreasuryInGame atomic.Int64
	maintenanceShortfalls atomic.Int64

	// System metrics
	databaseQueries atomic.Int64
	databaseErrors  atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64

	// Performance metrics
	averageTurnTime time.Duration
	peakHouses      int64
	peakTime        time.Time

	// Custom counters
	customCounters map[string]*atomic.Int64
	customGauges   map[string]*atomic.Int64

	// Start time
	startTime time.Time
}

// Global metrics instance
var global *MetricsCollector
var once sync.Once

// Init initializes the global metrics collector
func Init() *MetricsCollector {
	once.Do(func() {
		global = &MetricsCollector{
			customCounters: make(map[string]*atomic.Int64),
			customGauges:   make(map[string]*atomic.Int64),
			startTime:      time.Now(),
		}
	})
	return global
}

// Global returns the global metrics collector
func Global() *MetricsCollector {
	if global == nil {
		return Init()
	}
	return global
}

// Connection metrics
func (m *MetricsCollector) IncrementConnections() {
	m.totalConnections.Add(1)
}

func (m *MetricsCollector) IncrementActiveConnections() {
	m.activeConnections.Add(1)
}

func (m *MetricsCollector) DecrementActiveConnections() {
	m.activeConnections.Add(-1)
}

func (m *MetricsCollector) IncrementFailedConnections() {
	m.failedConnections.Add(1)
}

func (m *MetricsCollector) RecordConnectionDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectionDurations = append(m.connectionDurations, d)
	// Keep only last 1000 durations
	if len(m.connectionDurations) > 1000 {
		m.connectionDurations = m.connectionDurations[len(m.connectionDurations)-1000:]
	}
}

// House/order metrics
func (m *MetricsCollector) IncrementActiveHouses() {
	current := m.activeHouses.Add(1)
	m.updatePeakHouses(current)
}

func (m *MetricsCollector) DecrementActiveHouses() {
	m.activeHouses.Add(-1)
}

func (m *MetricsCollector) IncrementOrdersSubmitted() {
	m.ordersSubmitted.Add(1)
}

func (m *MetricsCollector) IncrementOrdersRejected() {
	m.ordersRejected.Add(1)
}

func (m *MetricsCollector) IncrementGamesCreated() {
	m.gamesCreated.Add(1)
}

// Turn activity metrics
func (m *MetricsCollector) IncrementTurnsAdvanced() {
	m.turnsAdvanced.Add(1)
}

func (m *MetricsCollector) IncrementCombat() {
	m.combatEncounters.Add(1)
}

func (m *MetricsCollector) IncrementColonizations() {
	m.colonizationsMade.Add(1)
}

func (m *MetricsCollector) IncrementHousesEliminated() {
	m.housesEliminated.Add(1)
}

func (m *MetricsCollector) IncrementFleetMoves() {
	m.fleetMovesExecuted.Add(1)
}

func (m *MetricsCollector) IncrementPrestigeEvents(n int64) {
	m.prestigeEventsEmitted.Add(n)
}

// Economy metrics
func (m *MetricsCollector) UpdateTotalTreasury(total int64) {
	m.totalTreasuryInGame.Store(total)
}

func (m *MetricsCollector) IncrementMaintenanceShortfalls() {
	m.maintenanceShortfalls.Add(1)
}

// System metrics
func (m *MetricsCollector) IncrementDBQueries() {
	m.databaseQueries.Add(1)
}

func (m *MetricsCollector) IncrementDBErrors() {
	m.databaseErrors.Add(1)
}

func (m *MetricsCollector) IncrementCacheHits() {
	m.cacheHits.Add(1)
}

func (m *MetricsCollector) IncrementCacheMisses() {
	m.cacheMisses.Add(1)
}

// Performance metrics
func (m *MetricsCollector) RecordTurnTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.averageTurnTime = d
}

func (m *MetricsCollector) updatePeakHouses(current int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current > m.peakHouses {
		m.peakHouses = current
		m.peakTime = time.Now()
	}
}

// Custom metrics
func (m *MetricsCollector) IncrementCounter(name string) {
	m.mu.Lock()
	if _, ok := m.customCounters[name]; !ok {
		m.customCounters[name] = &atomic.Int64{}
	}
	counter := m.customCounters[name]
	m.mu.Unlock()
	counter.Add(1)
}

func (m *MetricsCollector) SetGauge(name string, value int64) {
	m.mu.Lock()
	if _, ok := m.customGauges[name]; !ok {
		m.customGauges[name] = &atomic.Int64{}
	}
	gauge := m.customGauges[name]
	m.mu.Unlock()
	gauge.Store(value)
}

// MetricsSnapshot is a point-in-time copy of every collected metric.
type MetricsSnapshot struct {
	// Connection metrics
	TotalConnections  int64
	ActiveConnections int64
	FailedConnections int64
	AvgConnectionTime time.Duration

	// House/order metrics
	ActiveHouses    int64
	OrdersSubmitted int64
	OrdersRejected  int64
	GamesCreated    int64

	// Turn activity
	TurnsAdvanced         int64
	CombatEncounters      int64
	ColonizationsMade     int64
	HousesEliminated      int64
	FleetMovesExecuted    int64
	PrestigeEventsEmitted int64

	// Economy
	TotalTreasuryInGame   int64
	MaintenanceShortfalls int64

	// System
	DatabaseQueries int64
	DatabaseErrors  int64
	CacheHits       int64
	CacheMisses     int64
	CacheHitRate    float64

	// Performance
	AvgTurnTime time.Duration
	PeakHouses  int64
	PeakTime    time.Time
	Uptime      time.Duration

	// Custom metrics
	CustomCounters map[string]int64
	CustomGauges   map[string]int64
}

func (m *MetricsCollector) Snapshot() *MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var avgConnTime time.Duration
	if len(m.connectionDurations) > 0 {
		var total time.Duration
		for _, d := range m.connectionDurations {
			total += d
		}
		avgConnTime = total / time.Duration(len(m.connectionDurations))
	}

	hits := m.cacheHits.Load()
	misses := m.cacheMisses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	customCounters := make(map[string]int64)
	for k, v := range m.customCounters {
		customCounters[k] = v.Load()
	}
	customGauges := make(map[string]int64)
	for k, v := range m.customGauges {
		customGauges[k] = v.Load()
	}

	return &MetricsSnapshot{
		TotalConnections:      m.totalConnections.Load(),
		ActiveConnections:     m.activeConnections.Load(),
		FailedConnections:     m.failedConnections.Load(),
		AvgConnectionTime:     avgConnTime,
		ActiveHouses:          m.activeHouses.Load(),
		OrdersSubmitted:       m.ordersSubmitted.Load(),
		OrdersRejected:        m.ordersRejected.Load(),
		GamesCreated:          m.gamesCreated.Load(),
		TurnsAdvanced:         m.turnsAdvanced.Load(),
		CombatEncounters:      m.combatEncounters.Load(),
		ColonizationsMade:     m.colonizationsMade.Load(),
		HousesEliminated:      m.housesEliminated.Load(),
		FleetMovesExecuted:    m.fleetMovesExecuted.Load(),
		PrestigeEventsEmitted: m.prestigeEventsEmitted.Load(),
		TotalTreasuryInGame:   m.totalTreasuryInGame.Load(),
		MaintenanceShortfalls: m.maintenanceShortfalls.Load(),
		DatabaseQueries:       m.databaseQueries.Load(),
		DatabaseErrors:        m.databaseErrors.Load(),
		CacheHits:             m.cacheHits.Load(),
		CacheMisses:           m.cacheMisses.Load(),
		CacheHitRate:          hitRate,
		AvgTurnTime:           m.averageTurnTime,
		PeakHouses:            m.peakHouses,
		PeakTime:              m.peakTime,
		Uptime:                time.Since(m.startTime),
		CustomCounters:        customCounters,
		CustomGauges:          customGauges,
	}
}

// PrometheusFormat returns metrics in Prometheus exposition format
func (m *MetricsCollector) PrometheusFormat() string {
	snap := m.Snapshot()

	var out string
	out += fmt.Sprintf("# HELP ec4x_connections_total Total number of client event-stream connections\n")
	out += fmt.Sprintf("# TYPE ec4x_connections_total counter\n")
	out += fmt.Sprintf("ec4x_connections_total %d\n\n", snap.TotalConnections)

	out += fmt.Sprintf("# HELP ec4x_connections_active Currently active client event-stream connections\n")
	out += fmt.Sprintf("# TYPE ec4x_connections_active gauge\n")
	out += fmt.Sprintf("ec4x_connections_active %d\n\n", snap.ActiveConnections)

	out += fmt.Sprintf("# HELP ec4x_connections_failed Total failed connection attempts\n")
	out += fmt.Sprintf("# TYPE ec4x_connections_failed counter\n")
	out += fmt.Sprintf("ec4x_connections_failed %d\n\n", snap.FailedConnections)

	out += fmt.Sprintf("# HELP ec4x_houses_active Currently active houses across running games\n")
	out += fmt.Sprintf("# TYPE ec4x_houses_active gauge\n")
	out += fmt.Sprintf("ec4x_houses_active %d\n\n", snap.ActiveHouses)

	out += fmt.Sprintf("# HELP ec4x_orders_submitted_total Total accepted order packets\n")
	out += fmt.Sprintf("# TYPE ec4x_orders_submitted_total counter\n")
	out += fmt.Sprintf("ec4x_orders_submitted_total %d\n\n", snap.OrdersSubmitted)

	out += fmt.Sprintf("# HELP ec4x_orders_rejected_total Total rejected orders\n")
	out += fmt.Sprintf("# TYPE ec4x_orders_rejected_total counter\n")
	out += fmt.Sprintf("ec4x_orders_rejected_total %d\n\n", snap.OrdersRejected)

	out += fmt.Sprintf("# HELP ec4x_games_created_total Total games created\n")
	out += fmt.Sprintf("# TYPE ec4x_games_created_total counter\n")
	out += fmt.Sprintf("ec4x_games_created_total %d\n\n", snap.GamesCreated)

	out += fmt.Sprintf("# HELP ec4x_turns_advanced_total Total turns resolved\n")
	out += fmt.Sprintf("# TYPE ec4x_turns_advanced_total counter\n")
	out += fmt.Sprintf("ec4x_turns_advanced_total %d\n\n", snap.TurnsAdvanced)

	out += fmt.Sprintf("# HELP ec4x_combat_total Total combat encounters resolved\n")
	out += fmt.Sprintf("# TYPE ec4x_combat_total counter\n")
	out += fmt.Sprintf("ec4x_combat_total %d\n\n", snap.CombatEncounters)

	out += fmt.Sprintf("# HELP ec4x_colonizations_total Total colonies founded\n")
	out += fmt.Sprintf("# TYPE ec4x_colonizations_total counter\n")
	out += fmt.Sprintf("ec4x_colonizations_total %d\n\n", snap.ColonizationsMade)

	out += fmt.Sprintf("# HELP ec4x_houses_eliminated_total Total houses eliminated\n")
	out += fmt.Sprintf("# TYPE ec4x_houses_eliminated_total counter\n")
	out += fmt.Sprintf("ec4x_houses_eliminated_total %d\n\n", snap.HousesEliminated)

	out += fmt.Sprintf("# HELP ec4x_fleet_moves_total Total fleet moves executed\n")
	out += fmt.Sprintf("# TYPE ec4x_fleet_moves_total counter\n")
	out += fmt.Sprintf("ec4x_fleet_moves_total %d\n\n", snap.FleetMovesExecuted)

	out += fmt.Sprintf("# HELP ec4x_prestige_events_total Total prestige events emitted\n")
	out += fmt.Sprintf("# TYPE ec4x_prestige_events_total counter\n")
	out += fmt.Sprintf("ec4x_prestige_events_total %d\n\n", snap.PrestigeEventsEmitted)

	out += fmt.Sprintf("# HELP ec4x_treasury_total Total treasury across all houses in game\n")
	out += fmt.Sprintf("# TYPE ec4x_treasury_total gauge\n")
	out += fmt.Sprintf("ec4x_treasury_total %d\n\n", snap.TotalTreasuryInGame)

	out += fmt.Sprintf("# HELP ec4x_maintenance_shortfalls_total Total maintenance-phase shortfall events\n")
	out += fmt.Sprintf("# TYPE ec4x_maintenance_shortfalls_total counter\n")
	out += fmt.Sprintf("ec4x_maintenance_shortfalls_total %d\n\n", snap.MaintenanceShortfalls)

	out += fmt.Sprintf("# HELP ec4x_db_queries_total Total database queries\n")
	out += fmt.Sprintf("# TYPE ec4x_db_queries_total counter\n")
	out += fmt.Sprintf("ec4x_db_queries_total %d\n\n", snap.DatabaseQueries)

	out += fmt.Sprintf("# HELP ec4x_db_errors_total Total database errors\n")
	out += fmt.Sprintf("# TYPE ec4x_db_errors_total counter\n")
	out += fmt.Sprintf("ec4x_db_errors_total %d\n\n", snap.DatabaseErrors)

	out += fmt.Sprintf("# HELP ec4x_cache_hits_total Total cache hits\n")
	out += fmt.Sprintf("# TYPE ec4x_cache_hits_total counter\n")
	out += fmt.Sprintf("ec4x_cache_hits_total %d\n\n", snap.CacheHits)

	out += fmt.Sprintf("# HELP ec4x_cache_misses_total Total cache misses\n")
	out += fmt.Sprintf("# TYPE ec4x_cache_misses_total counter\n")
	out += fmt.Sprintf("ec4x_cache_misses_total %d\n\n", snap.CacheMisses)

	out += fmt.Sprintf("# HELP ec4x_cache_hit_rate Cache hit rate percentage\n")
	out += fmt.Sprintf("# TYPE ec4x_cache_hit_rate gauge\n")
	out += fmt.Sprintf("ec4x_cache_hit_rate %.2f\n\n", snap.CacheHitRate)

	out += fmt.Sprintf("# HELP ec4x_peak_houses Peak concurrent active houses\n")
	out += fmt.Sprintf("# TYPE ec4x_peak_houses gauge\n")
	out += fmt.Sprintf("ec4x_peak_houses %d\n\n", snap.PeakHouses)

	out += fmt.Sprintf("# HELP ec4x_uptime_seconds Daemon uptime in seconds\n")
	out += fmt.Sprintf("# TYPE ec4x_uptime_seconds gauge\n")
	out += fmt.Sprintf("ec4x_uptime_seconds %.0f\n\n", snap.Uptime.Seconds())

	// Custom counters
	for name, value := range snap.CustomCounters {
		out += fmt.Sprintf("# HELP ec4x_custom_%s Custom counter\n", name)
		out += fmt.Sprintf("# TYPE ec4x_custom_%s counter\n", name)
		out += fmt.Sprintf("ec4x_custom_%s %d\n\n", name, value)
	}

	// Custom gauges
	for name, value := range snap.CustomGauges {
		out += fmt.Sprintf("# HELP ec4x_custom_%s Custom gauge\n", name)
		out += fmt.Sprintf("# TYPE ec4x_custom_%s gauge\n", name)
		out += fmt.Sprintf("ec4x_custom_%s %d\n\n", name, value)
	}

	return out
}
