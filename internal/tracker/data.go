package tracker

// Category is the funnel stage an interaction event belongs to.
type Category string

const (
	CategoryAcquisition Category = "acquisition"
	CategoryActivation  Category = "activation"
	CategoryRetention   Category = "retention"
	CategoryReferral    Category = "referral"
	CategoryRevenue     Category = "revenue"
	CategoryInteraction Category = "interaction"
)

// Collection endpoints, relative to the API base.
const (
	PageViewEndpoint = "/analytics/pageview"
	EventEndpoint    = "/analytics/event"
)

// PageViewPayload is the body of a pageview report.
// Absent optional fields serialize as null.
type PageViewPayload struct {
	SessionID   string  `json:"session_id"`
	VisitorID   string  `json:"visitor_id"`
	Path        string  `json:"path"`
	Referrer    *string `json:"referrer"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
	UTMTerm     *string `json:"utm_term"`
	UTMContent  *string `json:"utm_content"`
	ScreenWidth int     `json:"screen_width"`
}

// EventPayload is the body of an interaction event report.
// Label and value are omitted when unset; properties is always an object.
type EventPayload struct {
	SessionID     string         `json:"session_id"`
	VisitorID     string         `json:"visitor_id"`
	EventName     string         `json:"event_name"`
	EventCategory Category       `json:"event_category"`
	EventLabel    *string        `json:"event_label,omitempty"`
	EventValue    *float64       `json:"event_value,omitempty"`
	Properties    map[string]any `json:"properties"`
	Path          string         `json:"path"`
}

// Settings names the identity cookies used by reports.
type Settings struct {
	VisitorCookie     string
	VisitorExpiryDays int
	SessionCookie     string
}

// EventOption customizes an interaction event.
type EventOption func(*EventPayload)

func WithCategory(category Category) EventOption {
	return func(p *EventPayload) {
		p.EventCategory = category
	}
}

func WithLabel(label string) EventOption {
	return func(p *EventPayload) {
		p.EventLabel = &label
	}
}

func WithValue(value float64) EventOption {
	return func(p *EventPayload) {
		p.EventValue = &value
	}
}

// WithProperties merges props into the event's properties.
func WithProperties(props map[string]any) EventOption {
	return func(p *EventPayload) {
		for k, v := range props {
			p.Properties[k] = v
		}
	}
}
