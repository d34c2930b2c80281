package integrations_test

import (
	"fmt"

	"github.com/matzehuels/isograph/pkg/integrations"
)

func ExampleDefaultBreakerConfig() {
	cfg := integrations.DefaultBreakerConfig("uniprot")
	fmt.Println(cfg.Name, cfg.MinRequests, cfg.Threshold)
	// Output:
	// uniprot 5 0.6
}
