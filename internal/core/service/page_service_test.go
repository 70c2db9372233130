package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartflow/portal/internal/core/domain"
)

func TestPageService_Overview(t *testing.T) {
	svc := NewPageService()
	u := &domain.User{ID: "u1", Email: "ada@example.com", Metadata: domain.UserMetadata{FullName: "Ada Lovelace"}}

	ov := svc.Overview(u, "")

	assert.Equal(t, "Hello Ada Lovelace!", ov.Greeting)
	assert.Equal(t, domain.Range7Days, ov.TimeRange)
	require.Len(t, ov.Stats, 4)
	assert.Equal(t, "Click Rate", ov.Stats[2].Title)
	assert.Equal(t, domain.TrendNegative, ov.Stats[2].ChangeType)
	assert.Len(t, ov.Activities, 3)
	assert.Len(t, ov.QuickActions, 3)
	assert.Len(t, ov.Navigation, 3)
}

func TestPageService_OverviewFallsBackToEmailName(t *testing.T) {
	ov := NewPageService().Overview(&domain.User{Email: "grace@example.com"}, domain.Range30Days)

	assert.Equal(t, "Hello grace!", ov.Greeting)
	assert.Equal(t, domain.Range30Days, ov.TimeRange)
}

func TestPageService_Customers(t *testing.T) {
	svc := NewPageService()

	tests := []struct {
		name   string
		filter domain.CustomerFilter
		want   []string
	}{
		{"no filter", domain.CustomerFilter{}, []string{"Sarah Johnson", "Michael Chen", "Emily Rodriguez"}},
		{"search by name ignores case", domain.CustomerFilter{Search: "CHEN"}, []string{"Michael Chen"}},
		{"search by email", domain.CustomerFilter{Search: "emily.rod"}, []string{"Emily Rodriguez"}},
		{"status active", domain.CustomerFilter{Status: "active"}, []string{"Sarah Johnson", "Michael Chen"}},
		{"status and search", domain.CustomerFilter{Status: "inactive", Search: "sarah"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := svc.Customers(tt.filter)

			var names []string
			for _, c := range page.Customers {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), page.Total)
			assert.Len(t, page.Summary, 4)
		})
	}
}

func TestPageService_LandingIsNotShared(t *testing.T) {
	svc := NewPageService()

	l := svc.Landing()
	l.Features[0].Title = "changed"

	assert.Equal(t, "Real-time Analytics", svc.Landing().Features[0].Title)
	assert.Equal(t, "Coming Soon - Early Access Available", l.Badge)
}
