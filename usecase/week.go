package usecase

import (
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

const dateLayout = "2006-01-02"

// WeekConfig fixes the week-start convention and how far back an offset may
// reach. Every derived window starts on StartDay.
type WeekConfig struct {
	StartDay    time.Weekday
	OffsetFloor int
}

func DefaultWeekConfig() WeekConfig {
	return WeekConfig{
		StartDay:    time.Monday,
		OffsetFloor: -52,
	}
}

// LoadWeekConfig reads WEEK_START_DAY and WEEK_OFFSET_FLOOR from the
// environment, falling back to the defaults.
func LoadWeekConfig() WeekConfig {
	cfg := DefaultWeekConfig()
	if day, ok := parseWeekday(utils.GetEnvAsString("WEEK_START_DAY", "")); ok {
		cfg.StartDay = day
	}
	cfg.OffsetFloor = utils.GetEnvAsInt("WEEK_OFFSET_FLOOR", cfg.OffsetFloor)
	return cfg
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// WeekResolver converts week offsets or explicit date pairs into canonical
// windows: start at 00:00:00 on the configured week-start day, end six days
// later at 23:59:59.999.
type WeekResolver struct {
	clock Clock
	cfg   WeekConfig
}

func NewWeekResolver(clock Clock, cfg WeekConfig) *WeekResolver {
	return &WeekResolver{clock: clock, cfg: cfg}
}

// ResolveOffset maps a non-positive week offset (0 = current week) onto its
// window. Future offsets and offsets below the configured floor are rejected.
func (r *WeekResolver) ResolveOffset(offset int) (model.WeekWindow, error) {
	if offset > 0 {
		return model.WeekWindow{}, NewValidationError("weekOffset", "cannot be a future week")
	}
	if offset < r.cfg.OffsetFloor {
		return model.WeekWindow{}, NewValidationError("weekOffset",
			fmt.Sprintf("cannot reach back more than %d weeks", -r.cfg.OffsetFloor))
	}

	now := r.clock.Now()
	back := (int(now.Weekday()) - int(r.cfg.StartDay) + 7) % 7
	start := StartOfDay(now.AddDate(0, 0, -back+offset*7))
	return model.WeekWindow{
		Start: start,
		End:   EndOfDay(start.AddDate(0, 0, 6)),
	}, nil
}

// ResolveRange builds a window from explicit dates. Offset math is bypassed
// but time-of-day is normalized the same way so bucket alignment matches.
func (r *WeekResolver) ResolveRange(startDate, endDate string) (model.WeekWindow, error) {
	loc := r.clock.Now().Location()
	var fields []FieldError

	start, err := time.ParseInLocation(dateLayout, startDate, loc)
	if err != nil {
		fields = append(fields, FieldError{Field: "startDate", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, err := time.ParseInLocation(dateLayout, endDate, loc)
	if err != nil {
		fields = append(fields, FieldError{Field: "endDate", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(fields) > 0 {
		return model.WeekWindow{}, &ValidationError{Fields: fields}
	}
	if end.Before(start) {
		return model.WeekWindow{}, NewValidationError("endDate", "must not be before startDate")
	}

	return model.WeekWindow{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
	}, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay moves t to 23:59:59.999 in its own location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59,
		int(999*time.Millisecond), t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(dateLayout)
}
