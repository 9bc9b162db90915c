package cli

import "time"

type Options struct {
	Command    string
	APIBaseURL string
	APIToken   string
	CartFile   string
	Latitude   float64
	Longitude  float64
	Radius     int
	JSON       bool
	Debug      bool
	LogFile    string
	Timeout    time.Duration
}
