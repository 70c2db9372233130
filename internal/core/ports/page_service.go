package ports

import (
	"github.com/chartflow/portal/internal/core/domain"
)

// Overview is the dashboard home page.
type Overview struct {
	Greeting     string               `json:"greeting"`
	User         *domain.User         `json:"user"`
	Navigation   []domain.NavItem     `json:"navigation"`
	Stats        []domain.Stat        `json:"stats"`
	TimeRange    domain.TimeRange     `json:"time_range"`
	TimeRanges   []domain.TimeRange   `json:"time_ranges"`
	Activities   []domain.Activity    `json:"activities"`
	QuickActions []domain.QuickAction `json:"quick_actions"`
}

// CustomerPage is the filtered customers table plus its summary cards.
type CustomerPage struct {
	Navigation []domain.NavItem     `json:"navigation"`
	Summary    []domain.SummaryCard `json:"summary"`
	Customers  []domain.Customer    `json:"customers"`
	Total      int                  `json:"total"`
	Search     string               `json:"search"`
	Status     string               `json:"status"`
}

// PageService serves the static page content.
type PageService interface {
	Landing() domain.Landing
	Overview(user *domain.User, r domain.TimeRange) Overview
	Customers(filter domain.CustomerFilter) CustomerPage
}
