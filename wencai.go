package hqvm

import (
	"github.com/hqsdk/hqvm/types"
)

// WencaiBase runs a basic wencai screener query. The condition is passed
// through to the native module verbatim.
func (s *Session) WencaiBase(condition string) (*types.Response, error) {
	return s.callResponse("wencai_base", condition, 1024*1024)
}

// WencaiNLP runs a natural-language wencai query. Responses are large, so
// the initial buffer is generous.
func (s *Session) WencaiNLP(condition string) (*types.Response, error) {
	return s.callResponse("wencai_nlp", condition, 8*1024*1024)
}

// IPOToday lists securities listing today.
func (s *Session) IPOToday() (*types.Response, error) {
	return s.callResponse("ipo_today", "", 1024)
}

// IPOWait lists securities waiting to list.
func (s *Session) IPOWait() (*types.Response, error) {
	return s.callResponse("ipo_wait", "", 1024)
}
