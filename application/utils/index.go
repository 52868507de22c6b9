package utils

import (
	"math"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetStringPointer(text string) *string {
	return &text
}

func GetFloat64Pointer(data float64) *float64 {
	return &data
}

// RoundTo2DP rounds to 2 decimal places. Used for hour figures on
// attendance records so stored values match what payroll consumes.
func RoundTo2DP(value float64) float64 {
	return math.Round(value*100) / 100
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}
