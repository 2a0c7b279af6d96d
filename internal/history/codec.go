// Package history encodes the entry history and persists it under a single key.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
)

// ErrNotArray is returned when the stored value is valid JSON but not an array
var ErrNotArray = errors.New("stored history is not a JSON array")

// Encode serializes the history as a JSON array using the persisted field names
func Encode(h models.History) ([]byte, error) {
	out := make(models.History, len(h))
	for i, e := range h {
		out[i] = e
		if out[i].Habits == nil {
			out[i].Habits = []bool{}
		}
	}
	return json.Marshal(out)
}

// Decode parses a stored history for the built-in habit list
func Decode(data []byte) (models.History, error) {
	return DecodeFor(data, engine.Default())
}

// DecodeFor parses a stored history permissively.
// Unknown keys are ignored, numbers may be floats or numeric strings, and
// entries that cannot be read are skipped with a warning. Entries without
// derived values get them recomputed by e, against e's habit count.
func DecodeFor(data []byte, e *engine.Engine) (models.History, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return models.History{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.History{}, ErrNotArray
		}
		return models.History{}, fmt.Errorf("failed to parse history: %w", err)
	}

	h := make(models.History, 0, len(raw))
	for i, item := range raw {
		entry, err := decodeEntry(item, e)
		if err != nil {
			logger.Warn("Skipping unreadable history entry", "index", i, "error", err)
			continue
		}
		h = append(h, entry)
	}
	return h, nil
}

type wireEntry struct {
	ID       *string   `json:"id"`
	Date     *string   `json:"date"`
	Mood     *flexInt  `json:"humeur"`
	Energy   *flexInt  `json:"energie"`
	Anxiety  *flexInt  `json:"anxiete"`
	Fatigue  *flexInt  `json:"fatigue"`
	Habits   flexBools `json:"habits"`
	Note     *string   `json:"note"`
	Score    *flexInt  `json:"score"`
	XP       *flexInt  `json:"xp"`
	Recovery *flexInt  `json:"recovery"`
}

func decodeEntry(item json.RawMessage, e *engine.Engine) (models.Entry, error) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Entry{}, errors.New("entry is not an object")
	}

	var w wireEntry
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		Mood:    w.Mood.orDefault(constants.DefaultRating),
		Energy:  w.Energy.orDefault(constants.DefaultRating),
		Anxiety: w.Anxiety.orDefault(constants.DefaultRating),
		Fatigue: w.Fatigue.orDefault(constants.DefaultRating),
		Habits:  []bool(w.Habits),
	}
	if entry.Habits == nil {
		entry.Habits = []bool{}
	}
	if w.ID != nil {
		entry.ID = *w.ID
	}
	if w.Date != nil {
		entry.Date = strings.TrimSpace(*w.Date)
	}
	if w.Note != nil {
		entry.Note = *w.Note
	}

	if w.Score == nil || w.XP == nil || w.Recovery == nil {
		derived := e.ComputeDerived(entry.Draft())
		entry.Score = w.Score.orDefault(derived.Score)
		entry.XP = w.XP.orDefault(derived.XP)
		entry.Recovery = w.Recovery.orDefault(derived.Recovery)
	} else {
		entry.Score = w.Score.orDefault(0)
		entry.XP = w.XP.orDefault(0)
		entry.Recovery = w.Recovery.orDefault(0)
	}

	return entry, nil
}

// flexInt accepts JSON numbers, fractional numbers and numeric strings
type flexInt struct {
	v int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("invalid number %s", string(b))
	}
	n = math.Round(n)
	if n < math.MinInt32 || n > math.MaxInt32 {
		return fmt.Errorf("number %s out of range", string(b))
	}
	f.v = int(n)
	return nil
}

func (f *flexInt) orDefault(def int) int {
	if f == nil {
		return def
	}
	return f.v
}

// flexBools accepts an array of booleans, 0/1 numbers or "true"/"false" strings
type flexBools []bool

func (f *flexBools) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("habits: %w", err)
	}

	out := make([]bool, len(items))
	for i, item := range items {
		v, err := parseFlexBool(item)
		if err != nil {
			return fmt.Errorf("habits[%d]: %w", i, err)
		}
		out[i] = v
	}
	*f = out
	return nil
}

func parseFlexBool(item json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(item, &b); err == nil {
		return b, nil
	}
	var n float64
	if err := json.Unmarshal(item, &n); err == nil {
		return n != 0, nil
	}
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return strconv.ParseBool(strings.TrimSpace(s))
	}
	return false, fmt.Errorf("invalid boolean %s", string(item))
}
