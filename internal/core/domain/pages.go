package domain

import (
	"fmt"
	"strings"
)

// Feature is a highlight card on the landing page.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Landing is the marketing page content.
type Landing struct {
	Badge    string    `json:"badge"`
	Headline string    `json:"headline"`
	Tagline  string    `json:"tagline"`
	Features []Feature `json:"features"`
}

// Trend marks a stat change as good or bad news.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)

// Stat is one dashboard summary card.
type Stat struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Change     string `json:"change"`
	ChangeType Trend  `json:"change_type"`
	Icon       string `json:"icon"`
}

// Activity is one entry in the recent activity feed.
type Activity struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Icon  string `json:"icon"`
}

// QuickAction is a dashboard shortcut.
type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// TimeRange selects the analytics chart window.
type TimeRange string

const (
	Range7Days   TimeRange = "7d"
	Range30Days  TimeRange = "30d"
	Range3Months TimeRange = "3m"
)

// TimeRanges lists the selectable chart windows in display order.
var TimeRanges = []TimeRange{Range7Days, Range30Days, Range3Months}

// ParseTimeRange converts s to a TimeRange; empty selects the 7 day window.
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return Range7Days, nil
	}
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeRange, s)
}

// CustomerStatus is the account state of a customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is a row of the customers table.
type Customer struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Location    string         `json:"location"`
	Status      CustomerStatus `json:"status"`
	JoinDate    string         `json:"join_date"`
	TotalOrders int            `json:"total_orders"`
	TotalSpent  string         `json:"total_spent"`
}

// SummaryCard is a labelled figure on the customers page.
type SummaryCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CustomerFilter narrows the customers table.
type CustomerFilter struct {
	Search string
	Status string // "all", "active" or "inactive"
}

// Matches reports whether c passes the filter. Search is a case-insensitive
// substring match on name or email.
func (f CustomerFilter) Matches(c Customer) bool {
	if f.Status != "" && f.Status != "all" && string(c.Status) != f.Status {
		return false
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

// NavItem is a dashboard sidebar link.
type NavItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

// Navigation is the dashboard sidebar, in display order.
var Navigation = []NavItem{
	{Name: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Name: "Customers", Path: "/customers", Icon: "users"},
	{Name: "Settings", Path: "/settings", Icon: "settings"},
}
