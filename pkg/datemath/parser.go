package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves natural-language publishing slots ("tomorrow morning",
// "next friday at 9am", "in 2 weeks") to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone string,
// e.g. "America/New_York". All resolved times fall in that zone.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Publish-hour for each daypart keyword. Engagement peaks mid-morning
// for realty audiences, so bare dayparts lean early.
var dayparts = map[string]int{
	"morning":   9,
	"noon":      12,
	"afternoon": 13,
	"evening":   18,
}

var atTimeRe = regexp.MustCompile(`\bat (\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// Parse converts a relative slot phrase to an absolute time.Time.
// The date part resolves against baseTime (usually time.Now()); an
// optional trailing daypart or clock time sets the hour, otherwise the
// slot lands at midnight.
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	res, err := p.ParseSlot(relative, baseTime)
	return res.AbsoluteTime, err
}

// ParseSlot resolves a slot phrase and reports whether it carried a
// clock time. Day-only phrases come back with IsAllDay set.
func (p *Parser) ParseSlot(relative string, baseTime time.Time) (ParseResult, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	relative, clock, hasClock, err := p.splitClock(relative)
	if err != nil {
		return ParseResult{AbsoluteTime: baseTime}, err
	}

	day, err := p.parseDay(relative, baseTime)
	if err != nil {
		return ParseResult{AbsoluteTime: baseTime}, err
	}
	return ParseResult{AbsoluteTime: day.Add(clock), IsAllDay: !hasClock}, nil
}

// splitClock strips a trailing daypart or "at H[:MM][am|pm]" phrase and
// returns the remaining date phrase plus the offset from midnight.
func (p *Parser) splitClock(relative string) (string, time.Duration, bool, error) {
	for word, hour := range dayparts {
		if strings.HasSuffix(relative, " "+word) {
			rest := strings.TrimSpace(strings.TrimSuffix(relative, word))
			return rest, time.Duration(hour) * time.Hour, true, nil
		}
	}

	m := atTimeRe.FindStringSubmatch(relative)
	if m == nil {
		return relative, 0, false, nil
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return relative, 0, false, fmt.Errorf("invalid clock time in %q", relative)
	}

	rest := strings.TrimSpace(relative[:len(relative)-len(m[0])])
	return rest, time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, true, nil
}

func (p *Parser) parseDay(relative string, baseTime time.Time) (time.Time, error) {
	switch relative {
	case "today", "":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}
	if strings.HasPrefix(relative, "next ") {
		return p.parseNextWeekday(relative, baseTime)
	}

	// Unknown phrases fall back to today rather than failing the whole
	// schedule request.
	return p.startOfDay(baseTime), nil
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	re := regexp.MustCompile(`in (\d+) (day|days|week|weeks|month|months)`)
	matches := re.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(relative string, baseTime time.Time) (time.Time, error) {
	weekdays := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	dayName := strings.TrimPrefix(relative, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
