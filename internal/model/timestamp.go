package model

import (
    "encoding/json"
    "fmt"
    "time"
)

// localLayout is the zone-less format most ShareIt clients send.
const localLayout = "2006-01-02T15:04:05"

// Timestamp is a time.Time that also accepts zone-less ISO timestamps,
// which are interpreted as UTC.
type Timestamp struct{ time.Time }

// At wraps t in a Timestamp.
func At(t time.Time) *Timestamp { return &Timestamp{Time: t} }

// UnmarshalJSON accepts RFC 3339 (with or without fractional seconds) and
// 2006-01-02T15:04:05[.fraction].
func (t *Timestamp) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err != nil {
        return fmt.Errorf("timestamp must be a string: %w", err)
    }
    for _, layout := range []string{time.RFC3339Nano, localLayout + ".999999999", localLayout} {
        if v, err := time.Parse(layout, s); err == nil {
            t.Time = v.UTC()
            return nil
        }
    }
    return fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON writes RFC 3339 in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
    return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}
