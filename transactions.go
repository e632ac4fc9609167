package hqvm

import (
	"fmt"

	"github.com/hqsdk/hqvm/types"
)

// transactionQuery is shared by the tick-level queries, which differ only in
// their protocol id and datatype list.
func (s *Session) transactionQuery(code string, start, end int64, protocolID int, dataTypes string, traceDetail bool) (*types.Response, error) {
	code, err := normalizeSecurityCode(code)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, &types.ApiError{Msg: "start timestamp must be before end timestamp"}
	}

	suffix := ""
	if traceDetail {
		suffix = "&TraceDetail=0"
	}
	req := fmt.Sprintf(
		"\"id=%d&instance=%d&zipversion=%d&code=%s&market=%s&start=%d&end=%d&datatype=%s%s\"",
		protocolID, s.nextInstanceID(), zipVersion, code[4:], code[:4], start, end, dataTypes, suffix,
	)
	return s.queryData(req, "zhu", 2*1024*1024, 5)
}

// TransactionData fetches tick-by-tick trades for one security between two
// unix timestamps.
func (s *Session) TransactionData(code string, start, end int64) (*types.Response, error) {
	return s.transactionQuery(code, start, end, 205, transactionDataTypes, true)
}

// SuperTransactionData fetches the wide tick dataset (order flow breakdown
// columns included).
func (s *Session) SuperTransactionData(code string, start, end int64) (*types.Response, error) {
	return s.transactionQuery(code, start, end, 205, superTransactionDataTypes, true)
}

// L2TransactionData fetches level-2 tick data.
func (s *Session) L2TransactionData(code string, start, end int64) (*types.Response, error) {
	return s.transactionQuery(code, start, end, 220, l2TransactionDataTypes, false)
}

// HistoryMinuteTimeData fetches the per-minute time series of one security
// for a given trading day (YYYYMMDD). When fields is non-empty, rows missing
// any of the named columns are dropped from the result.
func (s *Session) HistoryMinuteTimeData(code, date string, fields []string) (*types.Response, error) {
	code, err := normalizeSecurityCode(code)
	if err != nil {
		return nil, err
	}

	req := fmt.Sprintf(
		"\"id=207&instance=%d&zipversion=%d&code=%s&market=%s&datatype=%s&date=%s\"",
		s.nextInstanceID(), zipVersion, code[4:], code[:4], minuteTimeDataTypes, date,
	)
	resp, err := s.queryData(req, "zhu", 2*1024*1024, 5)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		filterRows(resp, fields)
	}
	return resp, nil
}

// filterRows keeps only the rows carrying every requested field.
func filterRows(resp *types.Response, fields []string) {
	rows, err := resp.Payload.ResultRows()
	if err != nil || rows == nil {
		return
	}

	filtered := rows[:0]
	for _, row := range rows {
		complete := true
		for _, field := range fields {
			if _, ok := row[field]; !ok {
				complete = false
				break
			}
		}
		if complete {
			filtered = append(filtered, row)
		}
	}
	_ = resp.Payload.SetResultRows(filtered)
}
