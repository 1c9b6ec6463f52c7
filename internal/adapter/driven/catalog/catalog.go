package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

var builtinSuggestions = map[string][]string{
	"Amazon S3": {
		"Configure lifecycle policies to move old data to Glacier automatically",
		"Use Intelligent-Tiering for infrequently accessed data",
		"Remove unneeded duplicate objects and deduplicate data",
		"Review the need for cross-region replication regularly",
	},
	"Amazon EC2": {
		"Buy Reserved Instances or Savings Plans to reduce on-demand spend",
		"Rightsize instances with low utilization",
		"Evaluate Spot Instances for interruptible workloads",
		"Release unused Elastic IP addresses",
	},
	"Amazon RDS": {
		"Rightsize database instances",
		"Review the automated backup retention period",
		"Evaluate whether every read replica is still needed",
		"Consider Reserved Instances for steady databases",
	},
	"Amazon CloudFront": {
		"Tune cache settings to reduce origin requests",
		"Review the price class to lower delivery cost",
		"Measure the benefit of Origin Shield",
		"Delete unused distributions",
	},
	"AWS Lambda": {
		"Tune memory size and execution time",
		"Remove unnecessary function invocations",
		"Review provisioned concurrency settings",
		"Consider consolidating small functions",
	},
}

// Nomes alternativos que aparecem nos relatórios de custo para o mesmo serviço.
var builtinAliases = map[string]string{
	"Amazon Lambda": "AWS Lambda",
}

var builtinFallback = []string{
	"Review usage of the top cost items against actual demand",
	"Tag resources to attribute cost to owners",
	"Set an AWS Budget with alerts for this service",
	"Check for pricing model discounts such as Savings Plans",
}

// StaticCatalog is an in-memory SuggestionCatalog.
type StaticCatalog struct {
	services map[string][]string
	fallback []string
}

// catalogFile é o formato do arquivo de sugestões (YAML, TOML ou JSON).
type catalogFile struct {
	Services map[string][]string `json:"services" yaml:"services" toml:"services"`
	Fallback []string            `json:"fallback" yaml:"fallback" toml:"fallback"`
}

// NewStaticCatalog cria o catálogo com as sugestões embutidas.
func NewStaticCatalog() *StaticCatalog {
	services := make(map[string][]string, len(builtinSuggestions))
	for name, list := range builtinSuggestions {
		services[normalize(name)] = list
	}
	for alias, name := range builtinAliases {
		services[normalize(alias)] = builtinSuggestions[name]
	}
	return &StaticCatalog{services: services, fallback: builtinFallback}
}

// NewCatalog returns the built-in catalog, overridden by path when it is set.
func NewCatalog(path string) (repository.SuggestionCatalog, error) {
	c := NewStaticCatalog()
	if path == "" {
		return c, nil
	}
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile mescla as entradas do arquivo sobre o catálogo atual.
// Entradas do arquivo substituem a lista inteira do serviço.
func (c *StaticCatalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading suggestions file: %w", err)
	}

	var f catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		return fmt.Errorf("unsupported suggestions file format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("error parsing suggestions file %s: %w", path, err)
	}

	for name, list := range f.Services {
		c.services[normalize(name)] = list
	}
	if len(f.Fallback) > 0 {
		c.fallback = f.Fallback
	}
	return nil
}

// Suggestions returns a copy of the list registered for service, or the fallback.
func (c *StaticCatalog) Suggestions(service string) []string {
	list, ok := c.services[normalize(service)]
	if !ok || len(list) == 0 {
		list = c.fallback
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
