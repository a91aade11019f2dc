package models

import (
	"strconv"
	"time"
)

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// NowMillis returns the current time as epoch milliseconds, the resolution
// used by persisted records and channel announcements.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// TimeMilli is a time.Time that marshals as epoch milliseconds, matching
// the wire format of push payloads.
type TimeMilli time.Time

// Time returns the underlying time.Time.
func (t *TimeMilli) Time() time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Time(*t)
}

func (t TimeMilli) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Time(t).UnixMilli(), 10)), nil
}

func (t *TimeMilli) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		// Some servers emit RFC3339 strings instead of millis.
		parsed, perr := time.Parse(`"`+time.RFC3339+`"`, string(data))
		if perr != nil {
			return err
		}
		*t = TimeMilli(parsed)
		return nil
	}
	*t = TimeMilli(time.UnixMilli(ms).UTC())
	return nil
}
