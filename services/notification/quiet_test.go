package notification

import (
	"testing"
	"time"

	"rentflow/models"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time { return time.Date(2026, 1, 1, h, m, 0, 0, time.UTC) }

func TestInQuietHours_SameDay(t *testing.T) {
	q := models.QuietHours{Enabled: true, Start: "12:00", End: "13:30"}

	assert.False(t, InQuietHours(q, at(11, 59)))
	assert.True(t, InQuietHours(q, at(12, 0)))
	assert.True(t, InQuietHours(q, at(13, 29)))
	assert.False(t, InQuietHours(q, at(13, 30)))
}

func TestInQuietHours_WrapsMidnight(t *testing.T) {
	q := models.QuietHours{Enabled: true, Start: "22:00", End: "07:00"}

	assert.True(t, InQuietHours(q, at(23, 15)))
	assert.True(t, InQuietHours(q, at(0, 0)))
	assert.True(t, InQuietHours(q, at(6, 59)))
	assert.False(t, InQuietHours(q, at(7, 0)))
	assert.False(t, InQuietHours(q, at(21, 59)))
}

func TestInQuietHours_DisabledOrInvalid(t *testing.T) {
	assert.False(t, InQuietHours(models.QuietHours{Enabled: false, Start: "00:00", End: "23:59"}, at(10, 0)))
	assert.False(t, InQuietHours(models.QuietHours{Enabled: true, Start: "25:00", End: "07:00"}, at(23, 0)))
	assert.False(t, InQuietHours(models.QuietHours{Enabled: true, Start: "08:00", End: "08:00"}, at(8, 0)))
}
