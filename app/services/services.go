// Package services provides external service integrations and technical concerns like messaging gateways and the collection agent
package services

// ProviderResult is the normalized outcome of a provider send: the price the
// gateway reported (nil when it reports none) and its response message or
// delivery identifier.
type ProviderResult struct {
	Price   *float64
	Message string
}
