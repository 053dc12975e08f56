package signature

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

const (
	defaultSimpleHeader      = "X-Signature"
	defaultTimestampedHeader = "Stripe-Signature"
	defaultToleranceSeconds  = 300
)

// Config lists the webhook providers the receiver accepts
type Config struct {
	Providers []ProviderConfig `json:"providers"`
}

// ProviderConfig describes how one provider signs its webhooks
type ProviderConfig struct {
	// Name is the path segment under /webhook/ and the metrics label
	Name string `json:"name"`

	// Scheme is "simple" (default) or "timestamped"
	Scheme string `json:"scheme"`

	// Header carries the signature
	Header string `json:"header"`

	// SecretSource specifies where to get the signing secret
	// Format: "type:value" where type can be:
	//   - "env:VAR_NAME" - from environment variable
	//   - "static:value" - direct value
	SecretSource string `json:"secret_source"`

	// Tolerance is the replay window in seconds for the timestamped scheme
	Tolerance int `json:"tolerance,omitempty"`
}

// SetDefaults applies default values to the configuration
func (c *Config) SetDefaults() {
	for i := range c.Providers {
		c.Providers[i].SetDefaults()
	}
}

// SetDefaults applies default values to a provider
func (p *ProviderConfig) SetDefaults() {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))

	if p.Scheme == "" {
		p.Scheme = SchemeSimple
	}

	if p.Header == "" {
		if p.Scheme == SchemeTimestamped {
			p.Header = defaultTimestampedHeader
		} else {
			p.Header = defaultSimpleHeader
		}
	}

	if p.Scheme == SchemeTimestamped && p.Tolerance == 0 {
		p.Tolerance = defaultToleranceSeconds
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return NewValidationError("at least one provider is required")
	}

	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if err := p.Validate(); err != nil {
			return NewValidationError("providers[%d]: %v", i, err)
		}
		if seen[p.Name] {
			return NewValidationError("providers[%d]: duplicate provider %q", i, p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

// Validate checks if the provider config is valid
func (p *ProviderConfig) Validate() error {
	if p.Name == "" {
		return NewValidationError("name is required")
	}

	if p.Header == "" {
		return NewValidationError("header is required")
	}

	switch p.Scheme {
	case SchemeSimple, SchemeTimestamped:
	default:
		return NewValidationError("unsupported scheme: %s", p.Scheme)
	}

	if p.Tolerance < 0 {
		return NewValidationError("tolerance must not be negative")
	}

	typ, _, ok := strings.Cut(p.SecretSource, ":")
	if !ok {
		return NewValidationError("secret source must look like env:NAME or static:value")
	}
	switch typ {
	case "env", "static":
	default:
		return NewValidationError("unsupported secret source type: %s", typ)
	}

	return nil
}

// ToleranceDuration returns the replay window as a duration.
func (p *ProviderConfig) ToleranceDuration() time.Duration {
	if p.Tolerance <= 0 {
		return DefaultTolerance
	}
	return time.Duration(p.Tolerance) * time.Second
}

// ResolveSecret returns the secret named by source. An env source that is
// unset resolves to the empty string, which every verifier rejects.
func ResolveSecret(source string) (string, error) {
	typ, value, ok := strings.Cut(source, ":")
	if !ok {
		return "", NewValidationError("invalid secret source format")
	}

	switch typ {
	case "env":
		return os.Getenv(value), nil
	case "static":
		return value, nil
	default:
		return "", NewValidationError("unsupported secret source type: %s", typ)
	}
}

// LoadConfig loads provider configuration from JSON
func LoadConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigFile reads and loads a JSON provider configuration file
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(data)
}

// Lookup returns the provider with the given name.
func (c *Config) Lookup(name string) (ProviderConfig, bool) {
	if c == nil {
		return ProviderConfig{}, false
	}
	name = strings.ToLower(name)
	for _, p := range c.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

// DefaultConfig returns the Razorpay and Stripe providers with secrets read
// from RAZORPAY_WEBHOOK_SECRET and STRIPE_WEBHOOK_SECRET.
func DefaultConfig(stripeTolerance int) *Config {
	config := &Config{
		Providers: []ProviderConfig{
			{
				Name:         "razorpay",
				Scheme:       SchemeSimple,
				Header:       "X-Razorpay-Signature",
				SecretSource: "env:RAZORPAY_WEBHOOK_SECRET",
			},
			{
				Name:         "stripe",
				Scheme:       SchemeTimestamped,
				Header:       "Stripe-Signature",
				SecretSource: "env:STRIPE_WEBHOOK_SECRET",
				Tolerance:    stripeTolerance,
			},
		},
	}
	config.SetDefaults()
	return config
}
