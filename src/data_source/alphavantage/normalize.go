package alphavantage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/models"
	"market-climber/src/utils"
)

// TopMoversResponse is the TOP_GAINERS_LOSERS payload. Numbers arrive as strings.
type TopMoversResponse struct {
	Metadata           string          `json:"metadata"`
	LastUpdated        string          `json:"last_updated"`
	TopGainers         []RawMover      `json:"top_gainers"`
	TopLosers          []RawMover      `json:"top_losers"`
	MostActivelyTraded []RawMover      `json:"most_actively_traded"`
	Information        string          `json:"Information"`
	Note               string          `json:"Note"`
	ErrorMessage       string          `json:"Error Message"`
	Error              json.RawMessage `json:"error"`
}

type RawMover struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

// -----------------------------------------------------------------------------

// NormalizeSnapshot turns a raw payload into a live snapshot. It either
// normalizes every entry or fails; there is no partial output.
func NormalizeSnapshot(payload []byte, now time.Time) (models.MMarketSnapshot, error) {
	// 1. Decode
	var resp TopMoversResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.MMarketSnapshot{}, helpers.NewValidationError("field %q has type %s, want %s", typeErr.Field, typeErr.Value, typeErr.Type)
		}
		return models.MMarketSnapshot{}, helpers.NewParseError(err, "decode payload")
	}

	// 2. Rate-limit and error markers
	if marker := upstreamMarker(resp); marker != "" {
		return models.MMarketSnapshot{}, helpers.NewUpstreamError("upstream refused request: %s", marker)
	}

	// 3. Shape
	if len(resp.TopGainers) == 0 {
		return models.MMarketSnapshot{}, helpers.NewValidationError("top_gainers missing or empty")
	}
	if len(resp.TopLosers) == 0 {
		return models.MMarketSnapshot{}, helpers.NewValidationError("top_losers missing or empty")
	}

	// 4. Entries
	gainers, err := normalizeMovers("top_gainers", resp.TopGainers)
	if err != nil {
		return models.MMarketSnapshot{}, err
	}
	losers, err := normalizeMovers("top_losers", resp.TopLosers)
	if err != nil {
		return models.MMarketSnapshot{}, err
	}

	timestamp := strings.TrimSpace(resp.LastUpdated)
	if timestamp == "" {
		timestamp = FormatTimestamp(now)
	}

	return models.MMarketSnapshot{
		Gainers:   gainers,
		Losers:    losers,
		Timestamp: timestamp,
		Source:    models.SnapshotSourceLive,
	}, nil
}

// -----------------------------------------------------------------------------

func upstreamMarker(resp TopMoversResponse) string {
	switch {
	case resp.ErrorMessage != "":
		return resp.ErrorMessage
	case resp.Information != "":
		return resp.Information
	case resp.Note != "":
		return resp.Note
	}

	raw := bytes.TrimSpace(resp.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) || bytes.Equal(raw, []byte(`""`)) {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}
	return string(raw)
}

// -----------------------------------------------------------------------------

func normalizeMovers(list string, raw []RawMover) ([]models.MSymbol, error) {
	out := make([]models.MSymbol, 0, len(raw))
	for i, r := range raw {
		sym, err := normalizeMover(r)
		if err != nil {
			return nil, wrapEntry(list, i, err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func wrapEntry(list string, i int, err error) error {
	var parseErr *helpers.ParseError
	if errors.As(err, &parseErr) {
		return helpers.NewParseError(err, "%s[%d]", list, i)
	}
	return helpers.NewValidationError("%s[%d]: %v", list, i, err)
}

// -----------------------------------------------------------------------------

func normalizeMover(r RawMover) (models.MSymbol, error) {
	ticker := strings.TrimSpace(r.Ticker)
	if ticker == "" {
		return models.MSymbol{}, helpers.NewValidationError("empty ticker")
	}

	price, err := parseNumber("price", r.Price)
	if err != nil {
		return models.MSymbol{}, err
	}
	if price < 0 {
		return models.MSymbol{}, helpers.NewValidationError("%s: negative price %v", ticker, price)
	}

	change, err := parseNumber("change_amount", r.ChangeAmount)
	if err != nil {
		return models.MSymbol{}, err
	}

	changePercent, err := ParseChangePercent(r.ChangePercentage)
	if err != nil {
		return models.MSymbol{}, err
	}

	return models.MSymbol{
		Symbol:        ticker,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
	}, nil
}

// -----------------------------------------------------------------------------

// ParseChangePercent parses "-15.18%" style strings, stripping exactly one trailing '%'.
func ParseChangePercent(s string) (float64, error) {
	return parseNumber("change_percentage", strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// -----------------------------------------------------------------------------

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, helpers.NewParseError(err, "%s %q", field, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, helpers.NewParseError(nil, "%s %q is not finite", field, s)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

// FormatTimestamp renders an instant as ISO-8601 UTC with milliseconds
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(utils.TIMESTAMP_LAYOUT)
}
