package types

import "encoding/json"

// Response is the envelope every native call returns. A non-empty ErrInfo
// reports a module-level condition; the call itself still succeeded.
type Response struct {
	ErrInfo string  `json:"err_info"`
	Payload Payload `json:"payload"`
}

// Payload carries the method result plus any auxiliary tables the module
// attaches alongside it.
type Payload struct {
	Result    json.RawMessage            `json:"result,omitempty"`
	DictExtra map[string]json.RawMessage `json:"dict_extra,omitempty"`
}

// ResultRows decodes Result as a list of row objects. A missing result
// yields nil rows and no error.
func (p *Payload) ResultRows() ([]map[string]any, error) {
	if len(p.Result) == 0 {
		return nil, nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(p.Result, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SetResultRows re-encodes rows into Result.
func (p *Payload) SetResultRows(rows []map[string]any) error {
	out, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	p.Result = out
	return nil
}

// ResultString decodes Result as a bare JSON string.
func (p *Payload) ResultString() (string, bool) {
	var s string
	if err := json.Unmarshal(p.Result, &s); err != nil {
		return "", false
	}
	return s, true
}
