// Package integrations provides HTTP clients for remote protein data
// services.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [uniprot]: UniProt accession search and flat-file entry download
//
// # Client Pattern
//
// Service clients embed [Client], which handles:
//   - HTTP requests with a bounded timeout
//   - Retry with exponential backoff for network errors and 5xx responses
//   - A circuit breaker so a failing service fails fast
//   - Response caching through any [cache.Cache] backend
//
//	client := uniprot.NewClient(backend, 24*time.Hour)
//	ids, err := client.Search(ctx, "TP53_HUMAN", false)  // false = use cache
//
// Errors wrap [ErrNotFound] for 404 responses and [ErrNetwork] for transport
// failures and other non-success statuses.
//
// [uniprot]: github.com/matzehuels/isograph/pkg/integrations/uniprot
// [cache.Cache]: github.com/matzehuels/isograph/pkg/cache.Cache
package integrations
