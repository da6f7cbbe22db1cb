package utils

// -----------------------------------------------------------------------------

// Built-in defaults used when the YAML file leaves a value out.
const (
	DEFAULT_HOST                    = "0.0.0.0"
	DEFAULT_PORT                    = 8000
	DEFAULT_GRPC_PORT               = 50051
	DEFAULT_REQUEST_TIMEOUT_SECONDS = 10
	DEFAULT_USER_AGENT              = "market-climber/1.0"
	DEFAULT_API_KEY_ENV             = "ALPHAVANTAGE_API_KEY"
	DEFAULT_UPDATE_INTERVAL_SECONDS = 60
	DEFAULT_EXCHANGE                = "xnys"
	DEFAULT_DOOR_CYCLE_SECONDS      = 6
	DEFAULT_DOOR_OPEN_SECONDS       = 3
)

// Alpha Vantage top movers endpoint
const (
	ALPHA_VANTAGE_ENDPOINT = "https://www.alphavantage.co/query"
	ALPHA_VANTAGE_FUNCTION = "TOP_GAINERS_LOSERS"
)

// Snapshot timestamps are ISO-8601 UTC with millisecond precision
const TIMESTAMP_LAYOUT = "2006-01-02T15:04:05.000Z07:00"
