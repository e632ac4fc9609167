package hqvm

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/hqsdk/hqvm/internal/api"
	"github.com/hqsdk/hqvm/types"
)

// klineTimeField is the wire name of the bar timestamp column.
const klineTimeField = "时间"

// KlineQuery describes one k-line request. When Count is positive it wins
// over the time range; otherwise zero StartTime/EndTime mean "unbounded".
type KlineQuery struct {
	Code      string
	Adjust    string
	Interval  string
	Count     int
	StartTime time.Time
	EndTime   time.Time
}

// Klines fetches k-line bars for one security and normalizes the timestamp
// column: minute bars arrive as HHMMSS integers, daily and coarser bars as
// YYYYMMDD strings.
func (s *Session) Klines(q KlineQuery) (*types.Response, error) {
	code, err := normalizeSecurityCode(q.Code)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(adjustTypes, q.Adjust) {
		return nil, &types.ApiError{Msg: fmt.Sprintf("invalid adjust type: %q", q.Adjust)}
	}
	if !slices.Contains(minuteIntervals, q.Interval) && !slices.Contains(dailyIntervals, q.Interval) {
		return nil, &types.ApiError{Msg: fmt.Sprintf("invalid interval type: %q", q.Interval)}
	}

	params := map[string]any{
		"code":     code,
		"adjust":   q.Adjust,
		"interval": q.Interval,
	}
	if q.Count > 0 {
		params["count"] = q.Count
	} else {
		if !q.StartTime.IsZero() {
			params["start_time"] = q.StartTime.Format("2006-01-02 15:04:05")
		}
		if !q.EndTime.IsZero() {
			params["end_time"] = q.EndTime.Format("2006-01-02 15:04:05")
		}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, &types.ApiError{Msg: fmt.Sprintf("serializing kline params: %s", err)}
	}

	resp, err := api.Call[types.Response](s.caller, "klines", string(raw), 1024*1024)
	if err != nil {
		return nil, err
	}
	normalizeKlineTimes(&resp, q.Interval)
	return &resp, nil
}

// normalizeKlineTimes rewrites the timestamp column in place. Rows that do
// not carry the column, or a result that is not a row array, are left as-is.
func normalizeKlineTimes(resp *types.Response, interval string) {
	rows, err := resp.Payload.ResultRows()
	if err != nil || rows == nil {
		return
	}

	minute := slices.Contains(minuteIntervals, interval)
	for _, row := range rows {
		value, ok := row[klineTimeField]
		if !ok {
			continue
		}
		if minute {
			// HHMMSS packed into a JSON number.
			num, ok := value.(float64)
			if !ok {
				continue
			}
			t := int64(num)
			row[klineTimeField] = fmt.Sprintf("%02d:%02d:%02d", t/10000, (t%10000)/100, t%100)
		} else {
			str, ok := value.(string)
			if !ok {
				continue
			}
			if t, err := time.ParseInLocation("20060102", str, time.Local); err == nil {
				row[klineTimeField] = t.Format("2006-01-02")
			}
		}
	}
	// Encoding rows we just decoded cannot fail.
	_ = resp.Payload.SetResultRows(rows)
}
