package service

import (
	"slices"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

var landing = domain.Landing{
	Badge:    "Coming Soon - Early Access Available",
	Headline: "Analytics That Drive Results",
	Tagline: "Transform your data into actionable insights with our powerful analytics platform. " +
		"Join thousands of teams making data-driven decisions.",
	Features: []domain.Feature{
		{Title: "Real-time Analytics", Description: "Monitor your metrics as they happen with live dashboards.", Icon: "zap"},
		{Title: "Secure & Compliant", Description: "Enterprise-grade security with GDPR compliance built-in.", Icon: "shield"},
		{Title: "Easy Integration", Description: "Connect with your favorite tools in just a few clicks.", Icon: "puzzle"},
	},
}

var stats = []domain.Stat{
	{Title: "Total Users", Value: "2,847", Change: "+12%", ChangeType: domain.TrendPositive, Icon: "users"},
	{Title: "Revenue", Value: "$45,231", Change: "+8%", ChangeType: domain.TrendPositive, Icon: "dollar-sign"},
	{Title: "Click Rate", Value: "3.4%", Change: "-3%", ChangeType: domain.TrendNegative, Icon: "mouse-pointer"},
	{Title: "Conversions", Value: "189", Change: "+15%", ChangeType: domain.TrendPositive, Icon: "shopping-cart"},
}

var activities = []domain.Activity{
	{Title: "New user registered", Time: "2 minutes ago", Icon: "user-plus"},
	{Title: "Payment received", Time: "5 minutes ago", Icon: "dollar-sign"},
	{Title: "Report generated", Time: "12 minutes ago", Icon: "bar-chart"},
}

var quickActions = []domain.QuickAction{
	{Title: "Create Report", Description: "Generate a new analytics report", Icon: "plus"},
	{Title: "Export Data", Description: "Download your analytics data", Icon: "download"},
	{Title: "Settings", Description: "Configure your preferences", Icon: "settings"},
}

var customers = []domain.Customer{
	{
		ID: 1, Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Phone: "+1 (555) 123-4567",
		Location: "New York, NY", Status: domain.CustomerActive, JoinDate: "2024-01-15",
		TotalOrders: 12, TotalSpent: "$2,450",
	},
	{
		ID: 2, Name: "Michael Chen", Email: "michael.chen@example.com", Phone: "+1 (555) 234-5678",
		Location: "San Francisco, CA", Status: domain.CustomerActive, JoinDate: "2024-01-20",
		TotalOrders: 8, TotalSpent: "$1,800",
	},
	{
		ID: 3, Name: "Emily Rodriguez", Email: "emily.rodriguez@example.com", Phone: "+1 (555) 345-6789",
		Location: "Austin, TX", Status: domain.CustomerInactive, JoinDate: "2024-02-01",
		TotalOrders: 3, TotalSpent: "$650",
	},
}

var customerSummary = []domain.SummaryCard{
	{Label: "Total Customers", Value: "1,234"},
	{Label: "Active", Value: "987"},
	{Label: "New This Month", Value: "45"},
	{Label: "Avg. Order Value", Value: "$189"},
}

type pageService struct{}

// NewPageService returns the PageService serving the built-in mock content.
func NewPageService() ports.PageService {
	return pageService{}
}

func (pageService) Landing() domain.Landing {
	l := landing
	l.Features = slices.Clone(landing.Features)
	return l
}

func (pageService) Overview(user *domain.User, r domain.TimeRange) ports.Overview {
	if r == "" {
		r = domain.Range7Days
	}
	return ports.Overview{
		Greeting:     "Hello " + user.DisplayName() + "!",
		User:         user,
		Navigation:   slices.Clone(domain.Navigation),
		Stats:        slices.Clone(stats),
		TimeRange:    r,
		TimeRanges:   slices.Clone(domain.TimeRanges),
		Activities:   slices.Clone(activities),
		QuickActions: slices.Clone(quickActions),
	}
}

func (pageService) Customers(filter domain.CustomerFilter) ports.CustomerPage {
	status := filter.Status
	if status == "" {
		status = "all"
	}
	matched := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}
	return ports.CustomerPage{
		Navigation: slices.Clone(domain.Navigation),
		Summary:    slices.Clone(customerSummary),
		Customers:  matched,
		Total:      len(matched),
		Search:     filter.Search,
		Status:     status,
	}
}
