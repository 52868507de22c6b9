package repository

import (
	"sync"

	"attendly.io/entities"
	"attendly.io/infrastructure/database/connection/datastore"
	"attendly.io/infrastructure/database/repository/mongo"
)

var attendanceOnce = sync.Once{}

var attendanceRepository mongo.MongoRepository[entities.Attendance]

func AttendanceRepo() *mongo.MongoRepository[entities.Attendance] {
	attendanceOnce.Do(func() {
		attendanceRepository = mongo.MongoRepository[entities.Attendance]{Model: datastore.AttendanceModel}
	})
	return &attendanceRepository
}
