package salesboard

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	maxHeaderNotifications = 5
	defaultLastUpdate      = "8:15 AM"
	brandName              = "Sales Analytics"

	// OpenParam is the query parameter carrying the open header panels.
	OpenParam = "open"
)

// Header panels that can be toggled independently.
const (
	PanelSearch        = "search"
	PanelNotifications = "notifications"
	PanelUserMenu      = "user"
	PanelMobileMenu    = "menu"
)

var defaultUser = User{Name: "Marcus R.", Role: "Sales Manager"}

// ViewState holds the four header toggles for a single request. Each flag is
// independent; opening one panel never closes another.
type ViewState struct {
	SearchExpanded    bool `json:"search_expanded"`
	NotificationsOpen bool `json:"notifications_open"`
	UserMenuOpen      bool `json:"user_menu_open"`
	MobileMenuOpen    bool `json:"mobile_menu_open"`
}

// ParseViewState reads a comma separated panel list such as
// "notifications,menu". Unknown names are ignored.
func ParseViewState(raw string) ViewState {
	var state ViewState
	for _, part := range strings.Split(raw, ",") {
		state.set(strings.TrimSpace(strings.ToLower(part)), true)
	}
	return state
}

func (s *ViewState) set(panel string, open bool) bool {
	switch panel {
	case PanelSearch:
		s.SearchExpanded = open
	case PanelNotifications:
		s.NotificationsOpen = open
	case PanelUserMenu:
		s.UserMenuOpen = open
	case PanelMobileMenu:
		s.MobileMenuOpen = open
	default:
		return false
	}
	return true
}

// IsOpen reports the state of a panel.
func (s ViewState) IsOpen(panel string) bool {
	switch panel {
	case PanelSearch:
		return s.SearchExpanded
	case PanelNotifications:
		return s.NotificationsOpen
	case PanelUserMenu:
		return s.UserMenuOpen
	case PanelMobileMenu:
		return s.MobileMenuOpen
	}
	return false
}

// Toggle returns a copy with only the named panel flipped.
func (s ViewState) Toggle(panel string) ViewState {
	next := s
	next.set(panel, !s.IsOpen(panel))
	return next
}

// Query serializes the open panels back to the "open" parameter value.
func (s ViewState) Query() string {
	var open []string
	for _, panel := range []string{PanelSearch, PanelNotifications, PanelUserMenu, PanelMobileMenu} {
		if s.IsOpen(panel) {
			open = append(open, panel)
		}
	}
	return strings.Join(open, ",")
}

// Href renders a query string that keeps params and applies state.
func (s ViewState) Href(params url.Values) string {
	values := url.Values{}
	for key, vals := range params {
		if key == OpenParam {
			continue
		}
		values[key] = append([]string(nil), vals...)
	}
	if q := s.Query(); q != "" {
		values.Set(OpenParam, q)
	}
	return "?" + values.Encode()
}

// UnreadCount counts unread notifications. An explicit Unread flag wins;
// otherwise an entry without a timestamp is unread.
func UnreadCount(items []Notification) int {
	count := 0
	for _, n := range items {
		if n.Unread != nil {
			if *n.Unread {
				count++
			}
			continue
		}
		if n.Timestamp == "" {
			count++
		}
	}
	return count
}

// UnreadBadge formats the badge text, or "" when nothing is unread.
func UnreadBadge(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > 9:
		return "9+"
	default:
		return strconv.Itoa(count)
	}
}

// HeaderInput is the data and request context needed to render the header.
type HeaderInput struct {
	Data   HeaderData
	Params url.Values
}

// NotificationView is a render-ready notification row.
type NotificationView struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// MenuItem is a labeled entry in a header menu.
type MenuItem struct {
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

// HeaderView is the render-ready page header.
type HeaderView struct {
	Brand              string             `json:"brand"`
	SearchPlaceholder  string             `json:"search_placeholder"`
	User               User               `json:"user"`
	State              ViewState          `json:"state"`
	Notifications      []NotificationView `json:"notifications"`
	NotificationsEmpty string             `json:"notifications_empty,omitempty"`
	UnreadCount        int                `json:"unread_count"`
	UnreadBadge        string             `json:"unread_badge,omitempty"`
	NotificationsLabel string             `json:"notifications_label"`
	UserMenu           []MenuItem         `json:"user_menu"`
	MobileMenu         []MenuItem         `json:"mobile_menu"`
	Breadcrumb         []string           `json:"breadcrumb"`
	LastUpdated        string             `json:"last_updated"`
	ToggleHrefs        map[string]string  `json:"toggle_hrefs"`
}

// BuildHeader renders the header view for the given toggle state.
func BuildHeader(input HeaderInput, state ViewState) HeaderView {
	user := defaultUser
	if input.Data.User != nil {
		user = *input.Data.User
	}
	unread := UnreadCount(input.Data.Notifications)
	view := HeaderView{
		Brand:             brandName,
		SearchPlaceholder: "Search...",
		User:              user,
		State:             state,
		UnreadCount:       unread,
		UnreadBadge:       UnreadBadge(unread),
		UserMenu: []MenuItem{
			{Label: "Profile Settings"},
			{Label: "Preferences"},
			{Label: "Sign out"},
		},
		MobileMenu: []MenuItem{
			{Label: "Dashboard", Active: true},
			{Label: "Leads"},
			{Label: "Opportunities"},
			{Label: "Reports"},
			{Label: "Settings"},
		},
		Breadcrumb:  []string{"Dashboard", "Sales Manager View"},
		LastUpdated: input.Data.LastUpdated,
		ToggleHrefs: map[string]string{},
	}
	if view.LastUpdated == "" {
		view.LastUpdated = defaultLastUpdate
	}
	view.NotificationsLabel = "Notifications"
	if unread > 0 {
		view.NotificationsLabel += " (" + strconv.Itoa(unread) + " unread)"
	}

	items := input.Data.Notifications
	if len(items) > maxHeaderNotifications {
		items = items[:maxHeaderNotifications]
	}
	view.Notifications = make([]NotificationView, 0, len(items))
	for _, n := range items {
		view.Notifications = append(view.Notifications, NotificationView{
			ID:        n.ID,
			Message:   n.Message,
			Timestamp: n.Timestamp,
			Type:      string(n.Type),
		})
	}
	if len(view.Notifications) == 0 {
		view.NotificationsEmpty = "No new notifications"
	}

	for _, panel := range []string{PanelSearch, PanelNotifications, PanelUserMenu, PanelMobileMenu} {
		view.ToggleHrefs[panel] = state.Toggle(panel).Href(input.Params)
	}
	return view
}
