package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", Rupiah(0))
	assert.Equal(t, "Rp 500", Rupiah(500))
	assert.Equal(t, "Rp 10.000", Rupiah(10000))
	assert.Equal(t, "Rp 1.250.000", Rupiah(1250000))
}

func TestTanggal(t *testing.T) {
	d := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 September 2026", Tanggal(d))

	d = time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "17 Januari 2026", Tanggal(d))
}

func TestCalendarURL(t *testing.T) {
	assert.Equal(t, "/beli/calender?m=9&y=2026", calendarURL(2026, time.September, ""))
	assert.Equal(t, "/beli/calender?date=2026-09-15&m=9&y=2026", calendarURL(2026, time.September, "2026-09-15"))
}
