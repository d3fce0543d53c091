package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/modules/intent"
	"skyguide/internal/modules/weather"
)

var ict = time.FixedZone("ICT", 7*60*60)

// now is 19/10 10:00 local.
var now = time.Date(2026, 10, 19, 10, 0, 0, 0, ict)

// series returns 3-hourly points starting at 19/10 12:00 local for the given number of days.
func series(days int) []weather.Point {
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, ict).UTC()
	var pts []weather.Point
	for i := 0; i < days*8; i++ {
		t := start.Add(time.Duration(i) * 3 * time.Hour)
		temp := 20 + float64(i%8)
		pts = append(pts, weather.Point{
			Time:        t,
			Temp:        temp,
			TempMin:     temp - 1,
			TempMax:     temp + 1,
			Humidity:    60 + float64(i%4)*10,
			Description: "mây rải rác",
			Icon:        "03d",
		})
	}
	return pts
}

func dates(s Summary) []string {
	out := make([]string, len(s.Days))
	for i, d := range s.Days {
		out[i] = d.Date.Format("02/01")
	}
	return out
}

func TestAggregate_NextDaysSkipsToday(t *testing.T) {
	s := Aggregate(series(5), 3, intent.ForecastNextDays, now)

	require.Equal(t, StatusOK, s.Status)
	assert.Equal(t, []string{"20/10", "21/10", "22/10"}, dates(s))
	assert.True(t, s.Days[0].Tomorrow)
	assert.Equal(t, "Ngày mai (20/10)", s.Days[0].Label)
	assert.Equal(t, "Ngày 21/10", s.Days[1].Label)
	require.NotNil(t, s.Tomorrow)
	assert.Contains(t, s.Text, "Ngày mai (20/10)")
}

func TestAggregate_TomorrowOnly(t *testing.T) {
	for _, kind := range []intent.Kind{intent.ForecastTomorrow, intent.ClothingAdviceTomorrow} {
		s := Aggregate(series(3), 1, kind, now)
		require.Equal(t, StatusOK, s.Status, kind)
		assert.Equal(t, []string{"20/10"}, dates(s))
		require.NotNil(t, s.Tomorrow)
		assert.Equal(t, s.Days[0].MinTemp, s.Tomorrow.MinTemp)
		assert.Equal(t, s.Days[0].MaxTemp, s.Tomorrow.MaxTemp)
	}
}

func TestAggregate_NonFutureIntentCountsFromToday(t *testing.T) {
	s := Aggregate(series(3), 2, intent.Unknown, now)
	assert.Equal(t, []string{"19/10", "20/10"}, dates(s))
	assert.Equal(t, "Ngày 19/10", s.Days[0].Label)
	assert.NotNil(t, s.Tomorrow)
}

func TestAggregate_NeverMoreThanNDays(t *testing.T) {
	pts := series(6)
	for n := -1; n <= 7; n++ {
		for _, kind := range intent.All {
			s := Aggregate(pts, n, kind, now)
			assert.LessOrEqual(t, len(s.Days), max(n, 1), "n=%d kind=%s", n, kind)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	pts := series(5)
	a := Aggregate(pts, 4, intent.ForecastNextDays, now)
	b := Aggregate(pts, 4, intent.ForecastNextDays, now)
	assert.Equal(t, a, b)
}

func TestAggregate_DayStatistics(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, ict)
	pts := []weather.Point{
		{Time: day.Add(6 * time.Hour), TempMin: 22, TempMax: 25, Humidity: 80, Description: "mưa nhẹ", Icon: "10d"},
		{Time: day.Add(9 * time.Hour), TempMin: 24, TempMax: 31, Humidity: 60, Description: "nắng", Icon: "01d"},
		{Time: day.Add(12 * time.Hour), TempMin: 23, TempMax: 29, Humidity: 70, Description: "mưa nhẹ", Icon: "01d"},
	}
	s := Aggregate(pts, 1, intent.ForecastTomorrow, now)
	require.Len(t, s.Days, 1)
	d := s.Days[0]
	assert.Equal(t, 22.0, d.MinTemp)
	assert.Equal(t, 31.0, d.MaxTemp)
	assert.InDelta(t, 70.0, d.AvgHumidity, 1e-9)
	assert.Equal(t, "mưa nhẹ", d.Description)
	assert.Equal(t, "01d", d.Icon)
	assert.Equal(t, "Ngày mai (20/10): 22–31°C, độ ẩm 70%, mưa nhẹ", s.Text)
}

func TestAggregate_TieBreakIsFirstSeen(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, ict)
	pts := []weather.Point{
		{Time: day.Add(3 * time.Hour), Description: "mưa", Icon: "10n"},
		{Time: day.Add(6 * time.Hour), Description: "nắng", Icon: "01d"},
		{Time: day.Add(9 * time.Hour), Description: "nắng", Icon: "01d"},
		{Time: day.Add(12 * time.Hour), Description: "mưa", Icon: "10n"},
	}
	for i := 0; i < 50; i++ {
		s := Aggregate(pts, 1, intent.ForecastTomorrow, now)
		require.Len(t, s.Days, 1)
		assert.Equal(t, "mưa", s.Days[0].Description)
		assert.Equal(t, "10n", s.Days[0].Icon)
	}
}

func TestAggregate_LocalDateBoundaries(t *testing.T) {
	// 19/10 18:00 UTC is already 20/10 01:00 in ICT.
	pts := []weather.Point{
		{Time: time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC), TempMin: 20, TempMax: 20},
	}
	s := Aggregate(pts, 1, intent.ForecastTomorrow, now)
	require.Equal(t, StatusOK, s.Status)
	assert.Equal(t, []string{"20/10"}, dates(s))
}

func TestAggregate_EdgeCases(t *testing.T) {
	t.Run("no points", func(t *testing.T) {
		s := Aggregate(nil, 3, intent.ForecastNextDays, now)
		assert.Equal(t, StatusNoData, s.Status)
		assert.Equal(t, msgNoData, s.Text)
		assert.Nil(t, s.Tomorrow)
	})

	t.Run("only today for a future intent", func(t *testing.T) {
		pts := series(1)[:4]
		s := Aggregate(pts, 2, intent.ForecastNextDays, now)
		assert.Equal(t, StatusNoData, s.Status)
		assert.Empty(t, s.Days)
	})

	t.Run("tomorrow missing", func(t *testing.T) {
		later := time.Date(2026, 10, 21, 9, 0, 0, 0, ict)
		pts := []weather.Point{{Time: later, TempMin: 20, TempMax: 25}}
		s := Aggregate(pts, 1, intent.ClothingAdviceTomorrow, now)
		assert.Equal(t, StatusNoTomorrow, s.Status)
		assert.Equal(t, msgNoTomorrow, s.Text)
		assert.Nil(t, s.Tomorrow)
	})

	t.Run("past points are dropped for future intents", func(t *testing.T) {
		pts := append([]weather.Point{{Time: now.Add(-48 * time.Hour)}}, series(3)...)
		s := Aggregate(pts, 2, intent.ForecastNextDays, now)
		assert.Equal(t, []string{"20/10", "21/10"}, dates(s))
	})
}
