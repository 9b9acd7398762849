package stats

import (
	"encoding/json"
	"expvar"
	"net/http"
	"time"
)

const (
	Registrations   = "Registrations"
	Logins          = "Logins"
	RoomsCreated    = "RoomsCreated"
	RoomsDeleted    = "RoomsDeleted"
	MessagesPosted  = "MessagesPosted"
	MessagesDeleted = "MessagesDeleted"
)

// StatsUpdater keeps forum counters in an unpublished expvar.Map so that
// several instances can coexist in one process.
type StatsUpdater struct {
	vars *expvar.Map
}

func (su *StatsUpdater) expvarHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	expvarData := make(map[string]any)
	su.vars.Do(func(kv expvar.KeyValue) {
		var value any
		json.Unmarshal([]byte(kv.Value.String()), &value)
		expvarData[kv.Key] = value
	})

	json.NewEncoder(w).Encode(expvarData)
}

// NewStatsUpdater creates a new stats updater with every forum counter
// registered at zero.
func NewStatsUpdater() *StatsUpdater {
	su := &StatsUpdater{
		vars: new(expvar.Map).Init(),
	}
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))

	for _, name := range []string{
		Registrations,
		Logins,
		RoomsCreated,
		RoomsDeleted,
		MessagesPosted,
		MessagesDeleted,
	} {
		su.vars.Set(name, new(expvar.Int))
	}
}

func (su *StatsUpdater) Handler() http.Handler {
	return http.HandlerFunc(su.expvarHandler)
}

// Incr adds one to the named counter, creating it if needed.
func (su *StatsUpdater) Incr(name string) {
	su.vars.Add(name, 1)
}

// Value returns the current value of a counter, or zero if it does not exist.
func (su *StatsUpdater) Value(name string) int64 {
	v, ok := su.vars.Get(name).(*expvar.Int)
	if !ok {
		return 0
	}

	return v.Value()
}
