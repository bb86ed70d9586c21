package collector

// pageViewRequest mirrors tracker.PageViewPayload with validation rules.
type pageViewRequest struct {
	SessionID   string  `json:"session_id" binding:"required"`
	VisitorID   string  `json:"visitor_id" binding:"required"`
	Path        string  `json:"path" binding:"required"`
	Referrer    *string `json:"referrer"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
	UTMTerm     *string `json:"utm_term"`
	UTMContent  *string `json:"utm_content"`
	ScreenWidth int     `json:"screen_width" binding:"gte=0"`
}

// eventRequest mirrors tracker.EventPayload with validation rules.
type eventRequest struct {
	SessionID     string         `json:"session_id" binding:"required"`
	VisitorID     string         `json:"visitor_id" binding:"required"`
	EventName     string         `json:"event_name" binding:"required"`
	EventCategory string         `json:"event_category"`
	EventLabel    *string        `json:"event_label"`
	EventValue    *float64       `json:"event_value"`
	Properties    map[string]any `json:"properties"`
	Path          string         `json:"path"`
}

type ackResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	PageViews int64  `json:"pageviews"`
	Events    int64  `json:"events"`
	StartedAt string `json:"started_at"`
}
