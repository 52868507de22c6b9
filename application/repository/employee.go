package repository

import (
	"sync"

	"attendly.io/entities"
	"attendly.io/infrastructure/database/connection/datastore"
	"attendly.io/infrastructure/database/repository/mongo"
)

var employeeOnce = sync.Once{}

var employeeRepository mongo.MongoRepository[entities.Employee]

func EmployeeRepo() *mongo.MongoRepository[entities.Employee] {
	employeeOnce.Do(func() {
		employeeRepository = mongo.MongoRepository[entities.Employee]{Model: datastore.EmployeeModel}
	})
	return &employeeRepository
}
