// Package products persists per-product Google service configuration in
// Azure Cosmos DB. Each product owns one document in the google_configs
// container recording which services (analytics, tags, adsense, ads) are
// enabled and their service-specific settings.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	gopserrors "github.com/acidni/googleops/internal/errors"
	"github.com/acidni/googleops/internal/logging"
)

const (
	// DefaultEndpoint is the development Cosmos DB account.
	DefaultEndpoint = "https://cosmos-terprint-dev.documents.azure.com:443/"
	// DefaultDatabase holds the google_configs container.
	DefaultDatabase = "TerprintAI"

	containerName = "google_configs"
)

// Service names accepted by EnableAPIs/DisableAPIs.
const (
	ServiceAnalytics = "analytics"
	ServiceTags      = "tags"
	ServiceAdSense   = "adsense"
	ServiceAds       = "ads"
)

// ContainerAPI is the subset of *azcosmos.ContainerClient the store needs.
// Tests inject a fake; production uses the real container client.
type ContainerAPI interface {
	ReadItem(ctx context.Context, partitionKey azcosmos.PartitionKey, itemID string, o *azcosmos.ItemOptions) (azcosmos.ItemResponse, error)
	UpsertItem(ctx context.Context, partitionKey azcosmos.PartitionKey, item []byte, o *azcosmos.ItemOptions) (azcosmos.ItemResponse, error)
}

// Options configures a Store. Zero fields fall back to defaults; a non-nil
// Container skips the real Cosmos client entirely.
type Options struct {
	Endpoint  string
	Database  string
	Container ContainerAPI
	Logger    *logging.Logger
}

// Store reads and writes product configuration documents.
type Store struct {
	container ContainerAPI
	logger    *logging.Logger
}

// NewStore builds a Store against the configured Cosmos DB account using the
// default Azure credential chain.
func NewStore(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(false, false)
	}

	container := opts.Container
	if container == nil {
		endpoint := opts.Endpoint
		if endpoint == "" {
			endpoint = DefaultEndpoint
		}
		database := opts.Database
		if database == "" {
			database = DefaultDatabase
		}

		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		client, err := azcosmos.NewClient(endpoint, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cosmos client: %w", err)
		}
		real, err := client.NewContainer(database, containerName)
		if err != nil {
			return nil, fmt.Errorf("failed to open container %s: %w", containerName, err)
		}
		container = real
	}

	return &Store{container: container, logger: logger}, nil
}

// Document is the google_configs item for one product. Per-service blocks
// stay untyped maps because their shape belongs to the consuming frontends.
type Document struct {
	ID          string                 `json:"id"`
	ProductCode string                 `json:"productCode"`
	ProductName string                 `json:"productName"`
	APIs        APIBlock               `json:"apis"`
	Analytics   map[string]interface{} `json:"analytics,omitempty"`
	Tags        map[string]interface{} `json:"tags,omitempty"`
	AdSense     map[string]interface{} `json:"adsense,omitempty"`
	Ads         map[string]interface{} `json:"ads,omitempty"`
	UpdatedAt   string                 `json:"updatedAt"`
}

// APIBlock lists the services enabled for a product.
type APIBlock struct {
	Enabled []string `json:"enabled"`
}

// EnableResult reports a successful EnableAPIs call.
type EnableResult struct {
	ProductCode     string   `json:"productCode"`
	EnabledServices []string `json:"enabledServices"`
	ConfigID        string   `json:"configId"`
}

// DisableResult reports a successful DisableAPIs call.
type DisableResult struct {
	ProductCode       string   `json:"productCode"`
	DisabledServices  []string `json:"disabledServices"`
	RemainingServices []string `json:"remainingServices"`
}

// Status reports which services a product has enabled.
type Status struct {
	ProductCode     string   `json:"productCode"`
	ProductName     string   `json:"productName,omitempty"`
	EnabledServices []string `json:"enabledServices"`
	Analytics       bool     `json:"analytics"`
	Tags            bool     `json:"tags"`
	AdSense         bool     `json:"adsense"`
	Ads             bool     `json:"ads"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// configID derives the document id for a product code.
func configID(productCode string) string {
	return strings.ToLower(productCode) + "-google-config"
}

// EnableAPIs writes (or rewrites) the product's configuration document with
// the given services enabled. Service-specific blocks are copied from config
// only for services being enabled.
func (s *Store) EnableAPIs(ctx context.Context, productCode string, services []string, config map[string]interface{}) (*EnableResult, error) {
	s.logger.Info("Enabling APIs for product %s: %s", productCode, strings.Join(services, ", "))

	doc := Document{
		ID:          configID(productCode),
		ProductCode: productCode,
		ProductName: productCode,
		APIs:        APIBlock{Enabled: services},
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if name, ok := config["productName"].(string); ok && name != "" {
		doc.ProductName = name
	}

	for _, service := range services {
		switch service {
		case ServiceAnalytics:
			doc.Analytics = asMap(config[ServiceAnalytics])
		case ServiceTags:
			doc.Tags = asMap(config[ServiceTags])
		case ServiceAdSense:
			doc.AdSense = asMap(config[ServiceAdSense])
		case ServiceAds:
			doc.Ads = asMap(config[ServiceAds])
		}
	}

	if err := s.upsert(ctx, &doc); err != nil {
		return nil, err
	}

	return &EnableResult{
		ProductCode:     productCode,
		EnabledServices: services,
		ConfigID:        doc.ID,
	}, nil
}

// DisableAPIs removes services from the product's enabled list. The document
// must already exist.
func (s *Store) DisableAPIs(ctx context.Context, productCode string, services []string) (*DisableResult, error) {
	s.logger.Info("Disabling APIs for product %s: %s", productCode, strings.Join(services, ", "))

	doc, err := s.read(ctx, productCode)
	if err != nil {
		if isNotFound(err) {
			return nil, gopserrors.UserError{
				Message:    fmt.Sprintf("No configuration found for product '%s'", productCode),
				Suggestion: "Enable services first with 'googleops apis enable'",
				Err:        err,
			}
		}
		return nil, err
	}

	remaining := make([]string, 0, len(doc.APIs.Enabled))
	for _, enabled := range doc.APIs.Enabled {
		if !contains(services, enabled) {
			remaining = append(remaining, enabled)
		}
	}
	doc.APIs.Enabled = remaining
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.upsert(ctx, doc); err != nil {
		return nil, err
	}

	return &DisableResult{
		ProductCode:       productCode,
		DisabledServices:  services,
		RemainingServices: remaining,
	}, nil
}

// GetStatus reports the product's enablement state. A missing document is
// not an error: every service reads as disabled.
func (s *Store) GetStatus(ctx context.Context, productCode string) (*Status, error) {
	doc, err := s.read(ctx, productCode)
	if err != nil {
		if isNotFound(err) {
			return &Status{
				ProductCode:     productCode,
				EnabledServices: []string{},
			}, nil
		}
		return nil, err
	}

	status := &Status{
		ProductCode:     productCode,
		ProductName:     doc.ProductName,
		EnabledServices: doc.APIs.Enabled,
		Analytics:       blockEnabled(doc.Analytics),
		Tags:            blockEnabled(doc.Tags),
		AdSense:         blockEnabled(doc.AdSense),
		Ads:             blockEnabled(doc.Ads),
		UpdatedAt:       doc.UpdatedAt,
	}
	if status.EnabledServices == nil {
		status.EnabledServices = []string{}
	}
	return status, nil
}

func (s *Store) read(ctx context.Context, productCode string) (*Document, error) {
	response, err := s.container.ReadItem(ctx, azcosmos.NewPartitionKeyString(productCode), configID(productCode), nil)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(response.Value, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode configuration for %s: %w", productCode, err)
	}
	return &doc, nil
}

func (s *Store) upsert(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration for %s: %w", doc.ProductCode, err)
	}

	if _, err := s.container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(doc.ProductCode), data, nil); err != nil {
		return gopserrors.UserError{
			Message:    fmt.Sprintf("Failed to save configuration for product '%s'", doc.ProductCode),
			Details:    err.Error(),
			Suggestion: "Check Cosmos DB access: 'az login' and the account's role assignments",
			Err:        err,
		}
	}

	s.logger.Debug("Upserted %s into %s", doc.ID, containerName)
	return nil
}

// isNotFound reports whether err is a Cosmos 404.
func isNotFound(err error) bool {
	var responseErr *azcore.ResponseError
	return errors.As(err, &responseErr) && responseErr.StatusCode == http.StatusNotFound
}

func asMap(value interface{}) map[string]interface{} {
	if m, ok := value.(map[string]interface{}); ok {
		return m
	}
	return nil
}

// blockEnabled reads the enabled flag from a service block. A missing block
// or flag means disabled.
func blockEnabled(block map[string]interface{}) bool {
	enabled, ok := block["enabled"].(bool)
	return ok && enabled
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
