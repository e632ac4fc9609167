package hqvm

import (
	"fmt"
	"math/rand"
)

// randGuestAccount generates throwaway credentials for sessions whose
// options carry no username or password. The quote service provisions guest
// accounts on first login, so the values only need to be fresh, not secret.
func randGuestAccount() (username, password string) {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("mx_%09d", rand.Intn(1000000000)), string(buf)
}
