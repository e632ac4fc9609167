package hqvm

// Price adjustment modes accepted by Klines.
const (
	AdjustForward  = "forward"
	AdjustBackward = "backward"
	AdjustNone     = ""
)

// Bar intervals accepted by Klines.
const (
	Interval1Min    = "1m"
	Interval5Min    = "5m"
	Interval15Min   = "15m"
	Interval30Min   = "30m"
	Interval60Min   = "60m"
	Interval120Min  = "120m"
	IntervalDay     = "day"
	IntervalWeek    = "week"
	IntervalMonth   = "month"
	IntervalQuarter = "quarter"
	IntervalYear    = "year"
)

var adjustTypes = []string{AdjustForward, AdjustBackward, AdjustNone}

var minuteIntervals = []string{
	Interval1Min, Interval5Min, Interval15Min, Interval30Min, Interval60Min, Interval120Min,
}

var dailyIntervals = []string{
	IntervalDay, IntervalWeek, IntervalMonth, IntervalQuarter, IntervalYear,
}

// securityMarkets are the market prefixes of individual securities; block
// codes use their own prefix table.
var securityMarkets = []string{"USHA", "USZA"}

var blockMarkets = []string{"URFI", "USHI", "USZI"}

// Block directory ids understood by the block service.
const (
	blockIndustry  = 0xCE5F
	blockConcept   = 0xCE5E
	blockIndex     = 0xD2
	blockStockZh   = 0xE
	blockStockUS   = 0xDC47
	blockStockHK   = 0xB
	blockStockZhB  = 0xF
	blockCBond     = 0xCE14
	blockFundETF   = 0xCFF3
	blockFundETFT0 = 0xD90C
)

// Datatype field lists for the cmd.query_data services. Opaque wire
// constants owned by the native protocol.
const (
	stockQuoteDataTypes = "5,6,8,9,10,12,13,402,19,407,24,30,48,49,69,70,3250,920371,55,199112,264648,1968584,461256,1771976,3475914,3541450,526792,3153,592888,592890"

	blockQuoteDataTypes = "55,38,39,13,19,92,90,5,275,276,277"

	transactionDataTypes = "1,5,10,12,18,49"

	superTransactionDataTypes = "1,5,7,10,12,13,14,18,19,20,21,25,26,27,28,29,31,32,33,34,35,49," +
		"69,70,92,123,125,150,151,152,153,154,155,156,157,45,66,661,102,103," +
		"104,105,106,107,108,109,110,111,112,113,114,115,116,117,118,119,120,121,123,125"

	l2TransactionDataTypes = "5,10,12,13"

	minuteTimeDataTypes = "1,10,13,19,40"
)
