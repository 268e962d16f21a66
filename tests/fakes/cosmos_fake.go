package fakes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
)

// FakeCosmosContainer is an in-memory stand-in for the google_configs
// container client used by the products store.
type FakeCosmosContainer struct {
	// Items maps item ids to raw JSON documents.
	Items map[string][]byte
	// ReadErr is returned by ReadItem when set.
	ReadErr error
	// UpsertErr is returned by UpsertItem when set.
	UpsertErr error
	// UpsertCalls counts UpsertItem invocations.
	UpsertCalls int
	// LastPartitionKey records the partition key of the most recent call.
	LastPartitionKey azcosmos.PartitionKey
}

// NewFakeCosmosContainer creates an empty fake container.
func NewFakeCosmosContainer() *FakeCosmosContainer {
	return &FakeCosmosContainer{
		Items: make(map[string][]byte),
	}
}

// SeedItem stores a raw JSON document under id.
func (f *FakeCosmosContainer) SeedItem(id string, doc []byte) {
	f.Items[id] = doc
}

// ReadItem returns the seeded document or a Cosmos-shaped 404.
func (f *FakeCosmosContainer) ReadItem(ctx context.Context, partitionKey azcosmos.PartitionKey, itemID string, o *azcosmos.ItemOptions) (azcosmos.ItemResponse, error) {
	f.LastPartitionKey = partitionKey

	if f.ReadErr != nil {
		return azcosmos.ItemResponse{}, f.ReadErr
	}

	data, exists := f.Items[itemID]
	if !exists {
		return azcosmos.ItemResponse{}, CosmosNotFoundError(itemID)
	}

	return azcosmos.ItemResponse{Value: data}, nil
}

// UpsertItem stores the document under its id field's value. Documents are
// keyed the same way the store writes them, so tests can read them back.
func (f *FakeCosmosContainer) UpsertItem(ctx context.Context, partitionKey azcosmos.PartitionKey, item []byte, o *azcosmos.ItemOptions) (azcosmos.ItemResponse, error) {
	f.UpsertCalls++
	f.LastPartitionKey = partitionKey

	if f.UpsertErr != nil {
		return azcosmos.ItemResponse{}, f.UpsertErr
	}

	id, err := itemID(item)
	if err != nil {
		return azcosmos.ItemResponse{}, err
	}
	f.Items[id] = item

	return azcosmos.ItemResponse{}, nil
}

func itemID(item []byte) (string, error) {
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(item, &doc); err != nil {
		return "", fmt.Errorf("document has no id: %w", err)
	}
	return doc.ID, nil
}

// CosmosNotFoundError builds the error shape the Cosmos SDK returns for a
// missing document.
func CosmosNotFoundError(itemID string) error {
	return &azcore.ResponseError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  "NotFound",
	}
}

// CosmosForbiddenError builds the error shape for missing role assignments.
func CosmosForbiddenError() error {
	return &azcore.ResponseError{
		StatusCode: http.StatusForbidden,
		ErrorCode:  "Forbidden",
	}
}
