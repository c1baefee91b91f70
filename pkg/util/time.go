package util

import (
	"errors"
	"strconv"
	"time"
)

var ErrInvalidDateTime = errors.New("Invalid date time")

const (
	UnixTimeFormat     = "15:04:05"
	UnixDatetimeFormat = "2006-01-02 15:04:05"
	ClockTimeFormat    = "15:04"
)

func parseUnix(timestamp string) (time.Time, error) {
	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil || seconds < 0 {
		return time.Time{}, ErrInvalidDateTime
	}

	return time.Unix(seconds, 0), nil
}

// FormatUnixTime renders Unix seconds as a wall clock time in the given location
func FormatUnixTime(timestamp string, location *time.Location) (string, error) {
	value, err := parseUnix(timestamp)
	if err != nil {
		return "", err
	}

	return value.In(location).Format(UnixTimeFormat), nil
}

// FormatUnixDatetime renders Unix seconds as a date and time in the given location
func FormatUnixDatetime(timestamp string, location *time.Location) (string, error) {
	value, err := parseUnix(timestamp)
	if err != nil {
		return "", err
	}

	return value.In(location).Format(UnixDatetimeFormat), nil
}

// FormatTime reformats an RFC3339 date time as HH:MM in the given location
func FormatTime(value string, location *time.Location) (string, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", ErrInvalidDateTime
	}

	return parsed.In(location).Format(ClockTimeFormat), nil
}
