// Package setup composes the two halves of product provisioning: create a
// GA4 property (with its web data stream) through the admin script, then
// store the stream's measurement id in the secret vault where frontends
// read it from.
package setup

import (
	"context"
	"fmt"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/logging"
	"github.com/acidni/googleops/internal/vault"
)

// AnalyticsAPI is the slice of the analytics client the provisioner needs.
type AnalyticsAPI interface {
	CreateProperty(ctx context.Context, displayName, accountID string, opts analytics.CreatePropertyOptions) (analytics.Result, error)
}

// Provisioner wires property creation to secret storage.
type Provisioner struct {
	Analytics AnalyticsAPI
	Vault     vault.Store
	Logger    *logging.Logger
}

// Outcome reports one SetupProduct run. Property always holds the original
// create-property result; a missing measurement id surfaces as Warning, not
// as an error.
type Outcome struct {
	Property      analytics.Result
	MeasurementID string
	SecretName    string
	Warning       string
}

// SetupProduct creates a GA4 property named productName under accountID with
// a web data stream for url, and stores the stream's measurement id under
// secretName. When the result carries no measurement id the property still
// counts as created: the outcome carries a warning and nothing is stored.
func (p *Provisioner) SetupProduct(ctx context.Context, productName, accountID, url, secretName string) (*Outcome, error) {
	result, err := p.Analytics.CreateProperty(ctx, productName, accountID, analytics.CreatePropertyOptions{URL: url})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Property:   result,
		SecretName: secretName,
	}

	measurementID := measurementIDFrom(result)
	if measurementID == "" {
		outcome.Warning = fmt.Sprintf(
			"Property created but no measurement id came back; create the web data stream manually and store its id under '%s'",
			secretName)
		return outcome, nil
	}

	p.logger().Debug("Provisioned measurement id %s for %s", logging.Secret(measurementID), productName)

	if err := p.Vault.Set(ctx, secretName, measurementID); err != nil {
		return nil, err
	}

	outcome.MeasurementID = measurementID
	p.logger().Info("Stored measurement id for %s as secret '%s'", productName, secretName)
	return outcome, nil
}

func (p *Provisioner) logger() *logging.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.New(false, false)
}

// measurementIDFrom digs stream.measurementId out of a create-property
// result. Anything other than an object with a non-empty id yields "".
func measurementIDFrom(result analytics.Result) string {
	object, ok := result.Object()
	if !ok {
		return ""
	}
	stream, ok := object["stream"].(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := stream["measurementId"].(string)
	return id
}
