package attendance

import "attendly.io/infrastructure/config"

// InitialiseEngine assembles the production engine.
func InitialiseEngine() {
	cfg := config.Get()
	Service = NewEngine(
		mongoRecordStore{},
		mongoDirectory{},
		queueNotifier{},
		cfg.Attendance,
		cfg.Geofence,
	)
}
