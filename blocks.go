package hqvm

import (
	"encoding/json"
	"fmt"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/hqsdk/hqvm/types"
)

// blockCache memoizes block-directory responses. The directories (industry,
// concept, index and exchange listings) change rarely but weigh megabytes,
// so re-querying them within one process is wasted round trips. A zero
// blockCache is disabled.
type blockCache struct {
	db dbm.DB
}

func (c *blockCache) get(key string) (*types.Response, bool) {
	if c.db == nil {
		return nil, false
	}
	raw, err := c.db.Get([]byte(key))
	if err != nil || raw == nil {
		return nil, false
	}
	var resp types.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *blockCache) put(key string, resp *types.Response) {
	if c.db == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.db.Set([]byte(key), raw)
}

// EnableDirectoryCache turns on in-memory memoization of block-directory
// queries for the rest of the session's lifetime.
func (s *Session) EnableDirectoryCache() {
	s.dirCache = blockCache{db: dbm.NewMemDB()}
}

// BlockData fetches the directory of one block id (an industry, concept or
// exchange listing). Responses with empty err_info are served from the
// directory cache when it is enabled.
func (s *Session) BlockData(blockID int) (*types.Response, error) {
	key := fmt.Sprintf("block/%x", blockID)
	if resp, ok := s.dirCache.get(key); ok {
		return resp, nil
	}

	req := fmt.Sprintf(
		"\"id=7&instance=%d&zipversion=%d&sortbegin=0&sortcount=0&sortorder=D&sortid=55&blockid=%x&reqflag=blockserve\"",
		s.nextInstanceID(), zipVersion, blockID,
	)
	resp, err := s.queryData(req, "bk", 2*1024*1024, 5)
	if err != nil {
		return nil, err
	}
	if resp.ErrInfo == "" {
		s.dirCache.put(key, resp)
	}
	return resp, nil
}

// BlockComponents lists the member securities of a block.
func (s *Session) BlockComponents(linkCode string) (*types.Response, error) {
	if linkCode == "" {
		return nil, &types.ApiError{Msg: "a block link code is required"}
	}

	req := fmt.Sprintf(
		"\"id=7&instance=%d&zipversion=%d&sortbegin=0&sortcount=0&sortorder=D&sortid=55&linkcode=%s\"",
		s.nextInstanceID(), zipVersion, linkCode,
	)
	return s.queryData(req, "bk", 2*1024*1024, 5)
}

// IndustryList returns the industry block directory.
func (s *Session) IndustryList() (*types.Response, error) {
	return s.BlockData(blockIndustry)
}

// ConceptList returns the concept block directory.
func (s *Session) ConceptList() (*types.Response, error) {
	return s.BlockData(blockConcept)
}

// IndexList returns the index directory.
func (s *Session) IndexList() (*types.Response, error) {
	return s.BlockData(blockIndex)
}

// StockZhList returns all mainland A-share listings.
func (s *Session) StockZhList() (*types.Response, error) {
	return s.BlockData(blockStockZh)
}

// StockUSList returns all US listings.
func (s *Session) StockUSList() (*types.Response, error) {
	return s.BlockData(blockStockUS)
}

// StockHKList returns all Hong Kong listings.
func (s *Session) StockHKList() (*types.Response, error) {
	return s.BlockData(blockStockHK)
}

// StockZhBList returns all mainland B-share listings.
func (s *Session) StockZhBList() (*types.Response, error) {
	return s.BlockData(blockStockZhB)
}

// CBondList returns all convertible bond listings.
func (s *Session) CBondList() (*types.Response, error) {
	return s.BlockData(blockCBond)
}

// FundETFList returns all ETF listings.
func (s *Session) FundETFList() (*types.Response, error) {
	return s.BlockData(blockFundETF)
}

// FundETFT0List returns all T+0 ETF listings.
func (s *Session) FundETFT0List() (*types.Response, error) {
	return s.BlockData(blockFundETFT0)
}
