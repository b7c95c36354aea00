package config

// DefaultAPIHost is the RapidAPI host serving the YouTube138 API.
const DefaultAPIHost = "youtube138.p.rapidapi.com"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "youtube138-mcp-server",
			Transport: "stdio",
			Port:      "4250",
		},
		API: APIConfig{
			Host:           DefaultAPIHost,
			BaseURL:        "https://" + DefaultAPIHost,
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Outputs:    []string{"console"},
			FilePath:   "logs/youtube138-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
		Check: CheckConfig{
			DelayMS: 1000,
		},
	}
}

// CredentialInstructions explains how to provide the RapidAPI key.
const CredentialInstructions = `Set your RapidAPI key first:
  Windows (PowerShell): $env:RAPIDAPI_KEY='your-api-key'
  Windows (CMD): set RAPIDAPI_KEY=your-api-key
  Linux/Mac: export RAPIDAPI_KEY='your-api-key'
`
