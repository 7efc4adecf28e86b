package load

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yagoas/SinistrosPRF/dataset"
)

func TestDriverValue(t *testing.T) {
	assert.Nil(t, driverValue(dataset.Null()))
	assert.Equal(t, int64(7), driverValue(dataset.Int(7)))
	assert.Equal(t, -38.51, driverValue(dataset.Float(-38.51)))
	assert.Equal(t, "Com ferido", driverValue(dataset.String("Com ferido")))

	ts := time.Date(2024, 3, 16, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-16", driverValue(dataset.Date(ts)))
	assert.Equal(t, "14:30:00", driverValue(dataset.TimeOfDay(ts)))
	assert.Equal(t, "2024-03-16 14:30:00", driverValue(dataset.DateTime(ts)))
}
