package analytics

import "context"

// CreatePropertyOptions are the optional arguments of CreateProperty. An
// empty URL means no web data stream is auto-provisioned upstream.
type CreatePropertyOptions struct {
	URL string
}

// ReportOptions are the optional arguments of RunReport. Both fields are
// comma-separated GA4 API names, passed through to the script untouched.
// Leaving Metrics empty lets the script apply its own default set.
type ReportOptions struct {
	Metrics    string
	Dimensions string
}

// ListAccounts lists the GA4 accounts visible to the service account.
func (c *Client) ListAccounts(ctx context.Context) (Result, error) {
	return c.Execute(ctx, "list-accounts", nil, nil)
}

// ListProperties lists properties across all accessible accounts.
func (c *Client) ListProperties(ctx context.Context) (Result, error) {
	return c.Execute(ctx, "list-properties", nil, nil)
}

// GetProperty fetches one property. Bare numeric IDs are accepted; the
// script normalizes them to the properties/<id> resource name.
func (c *Client) GetProperty(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "get-property", []string{propertyID}, nil)
}

// CreateProperty creates a GA4 property under the given account. When
// opts.URL is set the script also provisions a web data stream for that URL
// and reports it under the result's "stream" key.
func (c *Client) CreateProperty(ctx context.Context, displayName, accountID string, opts CreatePropertyOptions) (Result, error) {
	var flags []Flag
	if opts.URL != "" {
		flags = append(flags, Flag{Name: "url", Value: opts.URL})
	}
	return c.Execute(ctx, "create-property", []string{displayName, accountID}, flags)
}

// DeleteProperty soft-deletes a property (moves it to GA4's trash).
func (c *Client) DeleteProperty(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "delete-property", []string{propertyID}, nil)
}

// ListStreams lists the data streams of a property.
func (c *Client) ListStreams(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "list-streams", []string{propertyID}, nil)
}

// CreateStream creates a web data stream on a property.
func (c *Client) CreateStream(ctx context.Context, propertyID, displayName, url string) (Result, error) {
	return c.Execute(ctx, "create-stream", []string{propertyID, displayName, url}, nil)
}

// RunReport runs a GA4 Data API report over the given date range. Dates are
// GA4 date expressions ("2024-01-01", "7daysAgo", "today"). When both
// optionals are set, metrics precede dimensions on the command line.
func (c *Client) RunReport(ctx context.Context, propertyID, startDate, endDate string, opts ReportOptions) (Result, error) {
	var flags []Flag
	if opts.Metrics != "" {
		flags = append(flags, Flag{Name: "metrics", Value: opts.Metrics})
	}
	if opts.Dimensions != "" {
		flags = append(flags, Flag{Name: "dimensions", Value: opts.Dimensions})
	}
	return c.Execute(ctx, "run-report", []string{propertyID, startDate, endDate}, flags)
}

// ListCustomDimensions lists a property's custom dimensions.
func (c *Client) ListCustomDimensions(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "list-custom-dimensions", []string{propertyID}, nil)
}

// ListCustomMetrics lists a property's custom metrics.
func (c *Client) ListCustomMetrics(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "list-custom-metrics", []string{propertyID}, nil)
}

// ListAudiences lists a property's audiences.
func (c *Client) ListAudiences(ctx context.Context, propertyID string) (Result, error) {
	return c.Execute(ctx, "list-audiences", []string{propertyID}, nil)
}
