package hqvm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hqsdk/hqvm/internal/api"
	"github.com/hqsdk/hqvm/types"
)

const (
	connectAttempts      = 5
	connectBufferSize    = 10 * 1024
	disconnectBufferSize = 1024

	// Delay between buffer-growth retries so we do not hammer the native
	// module in a tight loop.
	bufferRetryDelay = 100 * time.Millisecond

	zipVersion = 2
)

// Session is the logical connection between this process and the native
// module's remote quote service. It is created disconnected; Connect and
// Disconnect move it between the two states and Close guarantees teardown on
// every exit path.
//
// A Session is not safe for concurrent use from multiple goroutines.
type Session struct {
	opts      types.SessionOptions
	caller    api.Caller
	logger    zerolog.Logger
	connected bool

	// instanceID seeds the per-request instance ids required by the
	// cmd.query_data protocol. Unique within this process only.
	instanceID int32

	dirCache blockCache

	// sleep is swapped out in tests so retry backoff does not slow them down.
	sleep func(time.Duration)
}

// NewSession loads the native module for the version named in opts (or
// reuses the already-loaded one) and returns a disconnected session. Missing
// credentials are replaced with a randomly generated guest account.
func NewSession(opts *types.SessionOptions) (*Session, error) {
	var o types.SessionOptions
	if opts != nil {
		o = *opts
	}
	if o.Username == "" || o.Password == "" {
		o.Username, o.Password = randGuestAccount()
	}

	module, err := api.LoadModule(o.LibVersion)
	if err != nil {
		return nil, err
	}
	return newSession(o, module), nil
}

// newSession wires a session to an arbitrary call boundary. Tests use it
// with a fake caller in place of the native module.
func newSession(opts types.SessionOptions, caller api.Caller) *Session {
	return &Session{
		opts:       opts,
		caller:     caller,
		logger:     zerolog.New(os.Stderr).With().Timestamp().Str("component", "hqvm").Logger(),
		instanceID: 6666666 + rand.Int31n(2222222),
		sleep:      time.Sleep,
	}
}

// SetLogger replaces the session's logger.
func (s *Session) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// Connected reports whether the session is currently logged in.
func (s *Session) Connected() bool {
	return s.connected
}

// Options returns a copy of the options the session was built with.
func (s *Session) Options() types.SessionOptions {
	return s.opts
}

// Connect logs in to the quote service. It tries up to five times, sleeping
// 1, 2, 4, 8 and 16 seconds after failed attempts. A response with empty
// err_info means success; anything else is logged and retried.
func (s *Session) Connect() error {
	params, err := json.Marshal(s.opts)
	if err != nil {
		return &types.ApiError{Msg: fmt.Sprintf("serializing session options: %s", err)}
	}

	for attempt := 0; attempt < connectAttempts; attempt++ {
		resp, err := api.Call[types.Response](s.caller, "connect", string(params), connectBufferSize)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("connect call failed")
		case resp.ErrInfo == "":
			s.connected = true
			s.logger.Info().Msg("connected to quote server")
			return nil
		default:
			s.logger.Warn().Str("err_info", resp.ErrInfo).Int("attempt", attempt+1).Msg("connect rejected")
		}
		s.sleep(time.Duration(1<<attempt) * time.Second)
	}
	return &types.ApiError{Msg: fmt.Sprintf("connect failed after %d attempts", connectAttempts)}
}

// Disconnect logs out. It is idempotent: when the session is already
// disconnected it does nothing.
func (s *Session) Disconnect() error {
	if !s.connected {
		s.logger.Debug().Msg("already disconnected")
		return nil
	}
	s.connected = false
	if _, err := api.Call[types.Response](s.caller, "disconnect", "", disconnectBufferSize); err != nil {
		return err
	}
	s.logger.Info().Msg("disconnected from quote server")
	return nil
}

// Close disconnects if the session is still connected. It is safe to defer
// right after NewSession and safe to call more than once.
func (s *Session) Close() error {
	if s.connected {
		return s.Disconnect()
	}
	return nil
}

// Help asks the native module for the usage text of a method.
func (s *Session) Help(req string) (string, error) {
	resp, err := api.Call[types.Response](s.caller, "help", req, 1024)
	if err != nil {
		return "", err
	}
	if text, ok := resp.Payload.ResultString(); ok {
		return text, nil
	}
	var obj map[string]string
	if err := json.Unmarshal(resp.Payload.Result, &obj); err == nil {
		return obj["help"], nil
	}
	return "", nil
}

// callResponse is the plain single-shot call shared by the domain methods
// that do not go through the adaptive query path.
func (s *Session) callResponse(method, params string, capacity int) (*types.Response, error) {
	resp, err := api.Call[types.Response](s.caller, method, params, capacity)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// nextInstanceID returns the current per-request instance id and advances
// the counter. Monotonic within the session, no cross-process uniqueness.
func (s *Session) nextInstanceID() int32 {
	id := s.instanceID
	s.instanceID++
	return id
}

// queryData runs one cmd.query_data request with the adaptive buffer-growth
// policy: on a buffer-too-small response the capacity is doubled and the
// call retried after a short delay, up to maxAttempts calls in total. Every
// other error propagates immediately. A response carrying a non-empty
// err_info is still a successful response; it is logged and returned.
func (s *Session) queryData(req, serviceKey string, capacity, maxAttempts int) (*types.Response, error) {
	if !s.connected {
		return nil, &types.ApiError{Msg: "not logged in"}
	}

	method := "cmd.query_data." + serviceKey
	for attempt := 1; ; attempt++ {
		resp, err := api.Call[types.Response](s.caller, method, req, capacity)
		if err == nil {
			if resp.ErrInfo != "" {
				s.logger.Warn().Str("err_info", resp.ErrInfo).Str("service", serviceKey).Msg("query returned error info")
			}
			s.logger.Debug().Str("service", serviceKey).Str("request", req).Msg("query executed")
			return &resp, nil
		}

		var tooSmall *types.BufferTooSmallError
		if !errors.As(err, &tooSmall) {
			return nil, err
		}
		if attempt == maxAttempts {
			return nil, &types.ApiError{
				Msg: fmt.Sprintf("max attempts reached for request %s, final buffer size: %d", req, capacity),
			}
		}
		s.logger.Info().
			Int("attempt", attempt).
			Int("current_bytes", capacity).
			Int("next_bytes", capacity*2).
			Msg("output buffer too small, growing")
		s.sleep(bufferRetryDelay)
		capacity *= 2
	}
}
