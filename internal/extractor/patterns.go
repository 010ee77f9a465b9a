package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/localpulse/localpulse/pkg/event"
)

// maxContainerEvents bounds how many containers one page can yield.
const maxContainerEvents = 20

// maxHeadingEvents bounds the heading fallback.
const maxHeadingEvents = 10

// containerSelectors are tried in order; the first selector matching
// at least one element wins.
var containerSelectors = []string{
	".event",
	".event-item",
	".eventlist-event",
	"article[class*='event']",
	".tribe-event",
	"[itemtype*='schema.org/Event']",
}

// fieldSelectors are nested candidates per field, first match wins.
var (
	titleSelectors = []string{
		"h1", "h2", "h3", "h4",
		"a[class*='title']", "a[class*='name']", "a",
	}
	descriptionSelectors = []string{
		"[class*='description']", "[class*='excerpt']", "[class*='summary']", "p",
	}
	dateSelectors  = []string{"time", "[class*='date']"}
	timeSelectors  = []string{"[class*='time']"}
	priceSelectors = []string{"[class*='price']", "[class*='cost']"}
)

// extractPatterns is the fallback strategy: locate event-like
// containers by candidate selectors, or failing that treat page
// headings as one event each.
func (x *Extractor) extractPatterns(doc *goquery.Document, req Request) []event.Event {
	containers := findContainers(doc)
	if containers == nil {
		return x.extractHeadings(doc, req)
	}

	var events []event.Event
	containers.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxContainerEvents {
			return false
		}
		if e, ok := x.eventFromContainer(sel, req); ok {
			events = append(events, e)
		}
		return true
	})
	return events
}

func findContainers(doc *goquery.Document) *goquery.Selection {
	for _, selector := range containerSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return nil
}

func (x *Extractor) eventFromContainer(sel *goquery.Selection, req Request) (event.Event, bool) {
	title := firstText(sel, titleSelectors)
	if title == "" {
		return event.Event{}, false
	}

	e := event.Event{
		Name:        title,
		Description: firstText(sel, descriptionSelectors),
	}

	dateText := firstDateText(sel)
	if parsed, ok := parseDate(dateText); ok {
		e.Date = parsed
	} else {
		e.Date = x.now().Format(event.DateLayout)
	}

	if timeText := firstText(sel, timeSelectors); timeText != "" {
		e.Time = timeText
	} else {
		e.Time = "evening"
	}

	e.SetPrice(parsePrice(firstText(sel, priceSelectors)))
	e.ExternalLink = resolveLink(sel, req.SourceURL)
	return e, true
}

// extractHeadings is the last resort: the first ten h1-h4 headings
// become one bare event each.
func (x *Extractor) extractHeadings(doc *goquery.Document, req Request) []event.Event {
	var events []event.Event
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxHeadingEvents {
			return false
		}
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return true
		}
		events = append(events, event.Event{
			Name:         title,
			Date:         x.now().Format(event.DateLayout),
			Time:         "evening",
			ExternalLink: req.SourceURL,
		})
		return true
	})
	return events
}

// firstText returns the text of the first candidate selector that
// matches a non-empty element.
func firstText(sel *goquery.Selection, candidates []string) string {
	for _, c := range candidates {
		if found := sel.Find(c).First(); found.Length() > 0 {
			if text := strings.TrimSpace(found.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstDateText prefers a machine-readable datetime attribute over
// display text.
func firstDateText(sel *goquery.Selection) string {
	for _, c := range dateSelectors {
		found := sel.Find(c).First()
		if found.Length() == 0 {
			continue
		}
		if dt, ok := found.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			return dt
		}
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

// resolveLink takes the container's first anchor and resolves relative
// hrefs against the source URL.
func resolveLink(sel *goquery.Selection, sourceURL string) string {
	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return sourceURL
	}
	href = strings.TrimSpace(href)

	ref, err := url.Parse(href)
	if err != nil {
		return sourceURL
	}
	if ref.IsAbs() {
		return href
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
