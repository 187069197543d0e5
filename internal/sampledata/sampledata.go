// Package sampledata generates reproducible bike-share hire records for tests
// and local experiments. Counts follow a linear signal in the weather and
// calendar columns plus Gaussian noise, so a fitted linear model scores well.
package sampledata

import (
	"math"
	"math/rand"
	"time"
)

var (
	seasons    = []string{"spring", "summer", "fall", "winter"}
	weathers   = []string{"Clear", "Clear", "Mist", "Light Rain"}
	hours      = []string{"12am", "1am", "2am", "3am", "4am", "5am", "6am", "7am", "8am", "9am", "10am", "11am", "12pm", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm", "10pm", "11pm"}
	hourEffect = []float64{-40, -50, -55, -60, -60, -45, 10, 80, 120, 60, 20, 30, 45, 40, 35, 40, 70, 130, 110, 60, 30, 10, -10, -25}
	start      = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Record is one raw input row keyed by column name. nil marks a missing cell.
type Record = map[string]interface{}

// Records returns n raw rows generated from seed. Every 13th row has no
// weekday and every 17th row no weathersit, so both imputers have work to do.
// Rows carry the target cnt and the unused casual and registered columns.
func Records(n int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Record, n)
	for i := range out {
		date := start.AddDate(0, 0, (i*7+rng.Intn(7))%730)
		hr := rng.Intn(len(hours))
		weather := rng.Intn(len(weathers))
		season := seasons[(int(date.Month())-1)/3]
		workingday := "Yes"
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			workingday = "No"
		}
		holiday := "No"
		if rng.Intn(30) == 0 {
			holiday = "Yes"
		}

		temp := 8 + 18*math.Sin(float64(date.YearDay())/365*math.Pi) + rng.NormFloat64()
		atemp := temp - 2 + rng.NormFloat64()
		hum := 40 + 40*rng.Float64()
		wind := 5 + 20*rng.Float64()

		cnt := 200 + 6*temp - 0.8*hum - 1.2*wind + hourEffect[hr] - 25*float64(weather)
		if date.Year() == 2012 {
			cnt += 40
		}
		cnt = math.Max(1, math.Round(cnt+rng.NormFloat64()*5))
		casual := math.Round(cnt * 0.2)

		rec := Record{
			"dteday":     date.Format("2006-01-02"),
			"season":     season,
			"hr":         hours[hr],
			"holiday":    holiday,
			"weekday":    date.Format("Mon"),
			"workingday": workingday,
			"weathersit": weathers[weather],
			"temp":       round4(temp),
			"atemp":      round4(atemp),
			"hum":        round4(hum),
			"windspeed":  round4(wind),
			"casual":     casual,
			"registered": cnt - casual,
			"cnt":        cnt,
		}
		if i%13 == 5 {
			rec["weekday"] = nil
		}
		if i%17 == 3 {
			rec["weathersit"] = nil
		}
		out[i] = rec
	}
	return out
}

// Target extracts the cnt column of records in order.
func Target(records []Record) []float64 {
	y := make([]float64, len(records))
	for i, r := range records {
		y[i] = r["cnt"].(float64)
	}
	return y
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
