package hqvm

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/hqsdk/hqvm/types"
)

// LoadSessionOptions reads session options from a TOML file. Fields left
// out of the file keep their zero values, so a file naming only lib_ver
// still gets a generated guest account from NewSession.
func LoadSessionOptions(path string) (*types.SessionOptions, error) {
	var opts types.SessionOptions
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return nil, fmt.Errorf("load session options: %w", err)
	}
	return &opts, nil
}
