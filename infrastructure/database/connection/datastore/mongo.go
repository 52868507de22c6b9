package datastore

import (
	"context"
	"os"
	"time"

	"attendly.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	EmployeeModel        *mongo.Collection
	AttendanceModel      *mongo.Collection
	FaceTemplateModel    *mongo.Collection
	VerificationLogModel *mongo.Collection
)

var cancelFunc *context.CancelFunc

func ConnectToDatabase() {
	cancelFunc = connectMongo()
}

func CleanUp() {
	if cancelFunc != nil {
		(*cancelFunc)()
	}
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database. The unique compound index on
// Attendances (employeeID, date) is the hard backstop for the one-record-
// per-employee-per-day invariant; application locks only narrow the race
// window, this index closes it.
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	EmployeeModel = db.Collection("Employees")
	EmployeeModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "active", Value: 1}},
		Options: options.Index(),
	}})

	AttendanceModel = db.Collection("Attendances")
	AttendanceModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "employeeID", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index(),
	}})

	FaceTemplateModel = db.Collection("FaceTemplates")
	FaceTemplateModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "employeeID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	VerificationLogModel = db.Collection("VerificationLogs")
	VerificationLogModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "employeeID", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}})

	logger.Info("mongodb indexes set up successfully")
}
