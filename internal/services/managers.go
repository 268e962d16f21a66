// Package services holds the managers for the Google surfaces adjacent to
// Analytics: Tag Manager, AdSense, Google Ads. The real API clients have not
// landed yet, so the managers return the documented placeholder shapes and
// keep the HTTP surface stable for the frontends that already consume it.
package services

import (
	"context"

	"github.com/acidni/googleops/internal/logging"
)

// Container is one Tag Manager container.
type Container struct {
	ContainerID string `json:"containerId"`
	Name        string `json:"name"`
	PublicID    string `json:"publicId,omitempty"`
	Status      string `json:"status,omitempty"`
}

// RevenueReport is an AdSense revenue summary for a date range.
type RevenueReport struct {
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Product      string  `json:"product,omitempty"`
	TotalRevenue float64 `json:"totalRevenue"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	CTR          float64 `json:"ctr"`
	CPC          float64 `json:"cpc"`
}

// Campaign is one Google Ads campaign.
type Campaign struct {
	CampaignID string  `json:"campaignId"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Budget     float64 `json:"budget,omitempty"`
}

// TagManagerAPI lists and inspects GTM containers.
type TagManagerAPI interface {
	ListContainers(ctx context.Context) ([]Container, error)
	GetContainer(ctx context.Context, containerID string) (Container, error)
}

// AdSenseAPI reports AdSense revenue.
type AdSenseAPI interface {
	RevenueReport(ctx context.Context, startDate, endDate, product string) (RevenueReport, error)
}

// AdsAPI lists Google Ads campaigns.
type AdsAPI interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
}

// TagManager manages Google Tag Manager containers.
type TagManager struct {
	logger *logging.Logger
}

// NewTagManager creates a Tag Manager manager.
func NewTagManager(logger *logging.Logger) *TagManager {
	if logger == nil {
		logger = logging.New(false, false)
	}
	return &TagManager{logger: logger}
}

// ListContainers lists all GTM containers.
// TODO: wire the Tag Manager API client (tagmanager/v2) once its service
// account is provisioned.
func (m *TagManager) ListContainers(ctx context.Context) ([]Container, error) {
	m.logger.Debug("Listing GTM containers")

	return []Container{
		{
			ContainerID: "GTM-SAMPLE",
			Name:        "Sample Container",
			PublicID:    "GTM-XXXXXX",
		},
	}, nil
}

// GetContainer returns details for one GTM container.
func (m *TagManager) GetContainer(ctx context.Context, containerID string) (Container, error) {
	m.logger.Debug("Getting container %s", containerID)

	return Container{
		ContainerID: containerID,
		Name:        "Container Name",
		Status:      "active",
	}, nil
}

// AdSense manages Google AdSense reporting.
type AdSense struct {
	logger *logging.Logger
}

// NewAdSense creates an AdSense manager.
func NewAdSense(logger *logging.Logger) *AdSense {
	if logger == nil {
		logger = logging.New(false, false)
	}
	return &AdSense{logger: logger}
}

// RevenueReport returns the revenue summary for a date range.
// TODO: wire the AdSense Management API (adsense/v2) once its service
// account is provisioned.
func (m *AdSense) RevenueReport(ctx context.Context, startDate, endDate, product string) (RevenueReport, error) {
	m.logger.Debug("Getting revenue report from %s to %s", startDate, endDate)

	return RevenueReport{
		StartDate: startDate,
		EndDate:   endDate,
		Product:   product,
	}, nil
}

// Ads manages Google Ads campaigns.
type Ads struct {
	logger *logging.Logger
}

// NewAds creates a Google Ads manager.
func NewAds(logger *logging.Logger) *Ads {
	if logger == nil {
		logger = logging.New(false, false)
	}
	return &Ads{logger: logger}
}

// ListCampaigns lists all campaigns.
// TODO: wire the Google Ads API client once the developer token is approved.
func (m *Ads) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	m.logger.Debug("Listing campaigns")

	return []Campaign{
		{
			CampaignID: "sample-campaign-1",
			Name:       "Sample Campaign",
			Status:     "ENABLED",
			Budget:     1000.0,
		},
	}, nil
}
