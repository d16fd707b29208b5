package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// vnZone is the fixed UTC+7 offset the app's users live in. A fixed zone
// avoids a tzdata dependency and matches the app's behavior.
var vnZone = time.FixedZone("ICT", 7*60*60)

var explicitTimeRe = regexp.MustCompile(`^(\d{1,2}):?(\d{2})?$`)

// dayPartHours maps time-hint words to their hour in local time.
var dayPartHours = map[string]int{
	"morning":   7,
	"noon":      12,
	"afternoon": 15,
	"evening":   19,
	"night":     21,
}

// ResolveTimeHint turns the closed time-hint vocabulary into a concrete
// timestamp. An empty or unrecognized hint means "now". When it is the
// small hours (before 6am local) and the hinted time is still ahead, the
// hint refers to yesterday: "dinner" typed at 2am is last night's dinner.
func ResolveTimeHint(hint string, now time.Time) time.Time {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" || hint == "now" || hint == "null" {
		return now
	}

	local := now.In(vnZone)
	currentHour := local.Hour()

	at := func(day time.Time, hour, minute int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, vnZone)
	}

	if strings.HasPrefix(hint, "yesterday") {
		yesterday := local.AddDate(0, 0, -1)
		part := strings.TrimPrefix(hint, "yesterday")
		part = strings.TrimPrefix(part, "_")
		hour, ok := dayPartHours[part]
		if !ok {
			hour = 12
		}
		minute := 0
		if part == "morning" {
			minute = 30
		}
		return at(yesterday, hour, minute)
	}

	switch hint {
	case "last_week":
		return at(local.AddDate(0, 0, -7), 12, 0)
	case "last_month":
		return at(local.AddDate(0, -1, 0), 12, 0)
	}

	if hour, ok := dayPartHours[hint]; ok {
		minute := 0
		if hint == "morning" {
			minute = 30
		}
		day := local
		if currentHour < 6 && hour > currentHour {
			day = local.AddDate(0, 0, -1)
		}
		return at(day, hour, minute)
	}

	if match := explicitTimeRe.FindStringSubmatch(hint); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute := 0
		if match[2] != "" {
			minute, _ = strconv.Atoi(match[2])
		}
		if hour > 23 || minute > 59 {
			return now
		}
		day := local
		if currentHour < 6 && hour > currentHour {
			day = local.AddDate(0, 0, -1)
		}
		return at(day, hour, minute)
	}

	return now
}
