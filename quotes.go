package hqvm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hqsdk/hqvm/types"
)

// StockMarketData fetches realtime quote fields for one security or a
// comma-separated batch. All codes in a batch must belong to one market.
func (s *Session) StockMarketData(codes string) (*types.Response, error) {
	market, shorts, err := splitCodes(codes, securityMarkets,
		"security code must be 10 characters and start with 'USHA' or 'USZA'")
	if err != nil {
		return nil, err
	}

	req := fmt.Sprintf(
		"\"id=200&instance=%d&zipversion=%d&codelist=%s&market=%s&datatype=%s\"",
		s.nextInstanceID(), zipVersion, strings.Join(shorts, ","), market, stockQuoteDataTypes,
	)
	return s.queryData(req, "fu", 2*1024*1024, 5)
}

// BlockMarketData fetches realtime quote fields for one block or a
// comma-separated batch of blocks.
func (s *Session) BlockMarketData(codes string) (*types.Response, error) {
	market, shorts, err := splitCodes(codes, blockMarkets, "block code must be 10 characters")
	if err != nil {
		return nil, err
	}

	req := fmt.Sprintf(
		"\"id=200&instance=%d&zipversion=%d&codelist=%s&market=%s&datatype=%s\"",
		s.nextInstanceID(), zipVersion, strings.Join(shorts, ","), market, blockQuoteDataTypes,
	)
	return s.queryData(req, "fu", 2*1024*1024, 5)
}

// OrderBookAsk returns the ask side of the level-2 order book.
func (s *Session) OrderBookAsk(code string) (*types.Response, error) {
	return s.callResponse("order_book_ask", strconv.Quote(code), 8*1024*1024)
}

// OrderBookBid returns the bid side of the level-2 order book.
func (s *Session) OrderBookBid(code string) (*types.Response, error) {
	return s.callResponse("order_book_bid", strconv.Quote(code), 8*1024*1024)
}
