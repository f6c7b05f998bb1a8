package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"realty-content-engine/internal/content"
	"realty-content-engine/pkg/gcalendar"
)

var scheduleTitleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Schedule books a publishing slot for a stored piece of content in
// Google Calendar. The slot is a natural phrase ("tomorrow morning",
// "next monday", "in 2 weeks at 9am") resolved against the configured
// timezone; day-only phrases get an all-day window.
func (uc *implUseCase) Schedule(ctx context.Context, input content.ScheduleInput) (content.ScheduleOutput, error) {
	if uc.calendar == nil || uc.dateMath == nil {
		return content.ScheduleOutput{}, content.ErrSchedulerUnavailable
	}
	if strings.TrimSpace(input.Slot) == "" {
		return content.ScheduleOutput{}, content.ErrEmptySlot
	}

	entry, err := uc.history.GetByID(ctx, input.EntryID)
	if err != nil {
		return content.ScheduleOutput{}, fmt.Errorf("load entry %d: %w", input.EntryID, err)
	}

	slot, err := uc.dateMath.ParseSlot(input.Slot, time.Now())
	if err != nil {
		return content.ScheduleOutput{}, fmt.Errorf("resolve slot %q: %w", input.Slot, err)
	}
	when := slot.AbsoluteTime
	end := when.Add(time.Hour)
	if slot.IsAllDay {
		end = uc.dateMath.EndOfDay(when)
	}

	title := input.Title
	if title == "" {
		if m := scheduleTitleRe.FindStringSubmatch(entry.Content); m != nil {
			title = strings.TrimSpace(m[1])
		} else {
			title = fmt.Sprintf("%s content #%d", entry.ContentType, entry.ID)
		}
	}

	uc.l.Infof(ctx, "%s: entry=%d slot=%q resolved=%s", LogPrefixSchedule, input.EntryID, input.Slot, when.Format(time.RFC3339))

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     fmt.Sprintf("Publish: %s", title),
		Description: scheduleDescription(entry.ContentType.String(), entry.Content),
		StartTime:   when,
		EndTime:     end,
		Timezone:    uc.timezone,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: calendar event creation failed: %v", LogPrefixSchedule, err)
		return content.ScheduleOutput{}, fmt.Errorf("create event: %w", err)
	}

	return content.ScheduleOutput{
		EventID:     event.ID,
		EventLink:   event.HtmlLink,
		Title:       title,
		ScheduledAt: when,
		ContentType: entry.ContentType,
	}, nil
}

// scheduleDescription previews the content in the event body without
// dumping an entire blog post into the calendar.
func scheduleDescription(contentType, body string) string {
	const previewLimit = 500
	preview := strings.TrimSpace(body)
	if len(preview) > previewLimit {
		preview = preview[:previewLimit] + "..."
	}
	return fmt.Sprintf("Content type: %s\n\n%s", contentType, preview)
}
