// README: Forecast aggregator; buckets 3-hourly points into calendar days and picks the days an intent asks for.
package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"skyguide/internal/modules/intent"
	"skyguide/internal/modules/weather"
)

type Status string

const (
	StatusOK         Status = "ok"
	StatusNoData     Status = "no_data"
	StatusNoTomorrow Status = "no_tomorrow"
)

const (
	msgNoData     = "Xin lỗi, hiện không có dữ liệu dự báo phù hợp cho khoảng thời gian bạn hỏi."
	msgNoTomorrow = "Xin lỗi, chưa có đủ dữ liệu dự báo cho ngày mai."
)

// Day is one calendar-day bucket.
type Day struct {
	Date        time.Time `json:"date"`
	Label       string    `json:"label"`
	Tomorrow    bool      `json:"tomorrow"`
	MinTemp     float64   `json:"min_temp"`
	MaxTemp     float64   `json:"max_temp"`
	AvgHumidity float64   `json:"avg_humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// ClothingSnapshot is what the clothing-advice prompt needs to know about tomorrow.
type ClothingSnapshot struct {
	Date        time.Time `json:"date"`
	MinTemp     float64   `json:"min_temp"`
	MaxTemp     float64   `json:"max_temp"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

type Summary struct {
	Status   Status
	Text     string
	Days     []Day
	Tomorrow *ClothingSnapshot
}

// Aggregate groups points by calendar date in now's location and summarizes at most numDays of them.
//
// Future-oriented intents drop today and earlier dates before the day limit is applied, so
// "next 3 days" means the three days after today. Other intents count from the first date seen.
// Dates are kept in first-seen order while grouping and reported in ascending order.
func Aggregate(points []weather.Point, numDays int, kind intent.Kind, now time.Time) Summary {
	if numDays < 1 {
		numDays = 1
	}
	loc := now.Location()
	today := dateOf(now, loc)
	tomorrow := today.AddDate(0, 0, 1)
	future := kind.FutureOriented()
	tomorrowOnly := future && numDays == 1

	var order []time.Time
	buckets := make(map[time.Time][]weather.Point)
	for _, p := range points {
		d := dateOf(p.Time, loc)
		if future && !d.After(today) {
			continue
		}
		if _, ok := buckets[d]; !ok {
			if len(order) == numDays {
				continue
			}
			order = append(order, d)
		}
		buckets[d] = append(buckets[d], p)
	}

	if len(order) == 0 {
		return Summary{Status: StatusNoData, Text: msgNoData}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	out := Summary{Status: StatusOK, Days: make([]Day, 0, len(order))}
	for _, d := range order {
		day := summarize(d, buckets[d])
		if d.Equal(tomorrow) {
			day.Tomorrow = true
			day.Label = "Ngày mai (" + d.Format("02/01") + ")"
			out.Tomorrow = &ClothingSnapshot{
				Date:        d,
				MinTemp:     day.MinTemp,
				MaxTemp:     day.MaxTemp,
				Humidity:    day.AvgHumidity,
				Description: day.Description,
				Icon:        day.Icon,
			}
		}
		out.Days = append(out.Days, day)
	}

	if tomorrowOnly && out.Tomorrow == nil {
		return Summary{Status: StatusNoTomorrow, Text: msgNoTomorrow}
	}

	lines := make([]string, len(out.Days))
	for i, d := range out.Days {
		lines[i] = d.Line()
	}
	out.Text = strings.Join(lines, "\n")
	return out
}

// Line renders the day as one human-readable line.
func (d Day) Line() string {
	line := fmt.Sprintf("%s: %.0f–%.0f°C, độ ẩm %.0f%%", d.Label, d.MinTemp, d.MaxTemp, d.AvgHumidity)
	if d.Description != "" {
		line += ", " + d.Description
	}
	return line
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func summarize(date time.Time, pts []weather.Point) Day {
	day := Day{
		Date:    date,
		Label:   "Ngày " + date.Format("02/01"),
		MinTemp: pts[0].TempMin,
		MaxTemp: pts[0].TempMax,
	}
	var humidity float64
	descs := newTally()
	icons := newTally()
	for _, p := range pts {
		day.MinTemp = min(day.MinTemp, p.TempMin)
		day.MaxTemp = max(day.MaxTemp, p.TempMax)
		humidity += p.Humidity
		descs.add(p.Description)
		icons.add(p.Icon)
	}
	day.AvgHumidity = humidity / float64(len(pts))
	day.Description = descs.mode()
	day.Icon = icons.mode()
	return day
}

// tally counts values and remembers first-seen order, so mode() breaks ties deterministically.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally { return &tally{counts: make(map[string]int)} }

func (t *tally) add(v string) {
	if v == "" {
		return
	}
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

func (t *tally) mode() string {
	best, n := "", 0
	for _, v := range t.order {
		if t.counts[v] > n {
			best, n = v, t.counts[v]
		}
	}
	return best
}
