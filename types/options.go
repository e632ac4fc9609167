package types

// SessionOptions configures a market-data session. The JSON field names are
// part of the wire protocol: the whole struct is serialized as the params of
// the native "connect" call. Options are immutable once a session has been
// constructed from them.
type SessionOptions struct {
	Username   string `json:"username" toml:"username"`
	Password   string `json:"password" toml:"password"`
	LibVersion string `json:"lib_ver" toml:"lib_ver"`
}
