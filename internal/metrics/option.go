package metrics

type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OtelCollector      Provider = "otelCollector"
)

// Config collects the reader set the meter provider is built from.
type Config struct {
	ServiceName string
	Provider    []ProviderCfg
}

type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

type OptionFn func(config Config) Config

func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName
		return config
	}
}

func WithPrometheus() OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, ProviderCfg{Provider: PrometheusProvider})
		return config
	}
}

func WithOtelCollector(endpoint string, headers map[string]string, insecure bool) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, ProviderCfg{
			Provider: OtelCollector,
			Endpoint: endpoint,
			Headers:  headers,
			Insecure: insecure,
		})
		return config
	}
}
