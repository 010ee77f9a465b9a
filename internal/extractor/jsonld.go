package extractor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/localpulse/localpulse/internal/metrics"
	"github.com/localpulse/localpulse/pkg/event"
)

// extractStructured pulls events out of embedded JSON-LD blocks. A
// malformed block is skipped, never fatal.
func (x *Extractor) extractStructured(doc *goquery.Document, req Request) []event.Event {
	var events []event.Event

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var data interface{}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			metrics.ExtractionFailures.Inc()
			x.logger.Debug().Err(err).Msg("Skipping malformed structured-data block")
			return
		}

		// A block may declare a single object or an array of them.
		items, ok := data.([]interface{})
		if !ok {
			items = []interface{}{data}
		}
		for _, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok || !declaresEventType(obj["@type"]) {
				continue
			}
			if e, ok := x.eventFromStructured(obj, req); ok {
				events = append(events, e)
			}
		}
	})

	return events
}

// declaresEventType accepts both plain and compound type declarations:
// "Event", "MusicEvent", ["Thing", "Event"] all qualify.
func declaresEventType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, "Event")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(s, "Event") {
				return true
			}
		}
	}
	return false
}

func (x *Extractor) eventFromStructured(data map[string]interface{}, req Request) (event.Event, bool) {
	name := strings.TrimSpace(asString(data["name"]))
	if name == "" {
		return event.Event{}, false
	}

	e := event.Event{
		Name:        name,
		Description: stripMarkup(asString(data["description"])),
		Artists:     nestedName(data["performer"]),
	}

	date, clock := x.splitStartDate(asString(data["startDate"]))
	e.Date = date
	e.Time = clock

	e.Location, e.VenueName = x.structuredLocation(data["location"], req.VenueName)
	e.SetPrice(structuredPrice(data["offers"]))

	if url := asString(data["url"]); url != "" {
		e.ExternalLink = url
	} else {
		e.ExternalLink = req.SourceURL
	}

	return e, true
}

// splitStartDate separates an ISO-ish startDate into a calendar date
// and a clock-time string. A dateless or unparseable value defaults to
// the extraction date; a timeless value defaults to the evening slot.
func (x *Extractor) splitStartDate(start string) (date, clock string) {
	date = x.now().Format(event.DateLayout)
	clock = "evening"

	start = strings.TrimSpace(start)
	if start == "" {
		return date, clock
	}

	datePart := start
	if idx := strings.Index(start, "T"); idx >= 0 {
		datePart = start[:idx]
		if parsed, ok := parseClock(start[idx+1:]); ok {
			clock = parsed
		}
	}
	if parsed, ok := parseDate(datePart); ok {
		date = parsed
	}
	return date, clock
}

// parseClock normalizes the time part of a startDate to HH:MM,
// tolerating single-digit hours, seconds and timezone suffixes.
func parseClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r == 'Z' || r == '+' || r == '-' {
			s = s[:i]
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// structuredLocation flattens a JSON-LD location into a display string,
// falling back to the venue name when the page gives nothing usable.
func (x *Extractor) structuredLocation(v interface{}, venueName string) (location, venue string) {
	venue = venueName
	location = venueName

	obj, ok := v.(map[string]interface{})
	if !ok {
		return location, venue
	}
	if name := asString(obj["name"]); name != "" {
		venue = name
	}
	switch addr := obj["address"].(type) {
	case string:
		if addr != "" {
			location = addr
		}
	case map[string]interface{}:
		parts := make([]string, 0, 3)
		for _, key := range []string{"streetAddress", "addressLocality", "addressRegion"} {
			if s := strings.TrimSpace(asString(addr[key])); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			location = strings.Join(parts, ", ")
		}
	}
	return location, venue
}

// structuredPrice reads offers in either object or array form, taking
// the first offer when there are several.
func structuredPrice(v interface{}) float64 {
	switch offers := v.(type) {
	case map[string]interface{}:
		return parsePrice(priceField(offers))
	case []interface{}:
		if len(offers) > 0 {
			if first, ok := offers[0].(map[string]interface{}); ok {
				return parsePrice(priceField(first))
			}
		}
	}
	return 0
}

func priceField(offer map[string]interface{}) string {
	switch p := offer["price"].(type) {
	case string:
		return p
	case float64:
		return fmt.Sprintf("%g", p)
	}
	return ""
}

func nestedName(v interface{}) string {
	if obj, ok := v.(map[string]interface{}); ok {
		return asString(obj["name"])
	}
	return ""
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
