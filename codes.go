package hqvm

import (
	"strings"

	"github.com/hqsdk/hqvm/types"
)

const codeLength = 10

func hasPrefixIn(code string, markets []string) bool {
	for _, m := range markets {
		if strings.HasPrefix(code, m) {
			return true
		}
	}
	return false
}

// normalizeSecurityCode upper-cases and validates a single security code:
// ten characters, known market prefix.
func normalizeSecurityCode(code string) (string, error) {
	code = strings.ToUpper(code)
	if len(code) != codeLength || !hasPrefixIn(code, securityMarkets) {
		return "", &types.InvalidCodeError{
			Code: code,
			Msg:  "security code must be 10 characters and start with 'USHA' or 'USZA'",
		}
	}
	return code, nil
}

// splitCodes validates a comma-separated code list against the given market
// prefixes and returns the shared market plus the market-stripped short
// codes. Mixing markets in one request is rejected; the quote services only
// answer per-market batches.
func splitCodes(list string, markets []string, invalidMsg string) (market string, shortCodes []string, err error) {
	codes := strings.Split(list, ",")
	for i, code := range codes {
		code = strings.ToUpper(code)
		if len(code) != codeLength || !hasPrefixIn(code, markets) {
			return "", nil, &types.InvalidCodeError{Code: code, Msg: invalidMsg}
		}
		codes[i] = code
	}

	market = codes[0][:4]
	for _, code := range codes {
		if code[:4] != market {
			return "", nil, &types.ApiError{Msg: "batch quote queries must share one market code"}
		}
		shortCodes = append(shortCodes, code[4:])
	}
	return market, shortCodes, nil
}
