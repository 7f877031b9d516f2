package player

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"strconv"
)

var guestAdjectives = []string{
	"Happy", "Clever", "Brave", "Gentle", "Wise", "Swift", "Bright", "Cool",
	"Daring", "Eager", "Fancy", "Grand", "Jolly", "Kind", "Lucky", "Mighty",
	"Noble", "Proud", "Quick", "Sharp", "Witty", "Zesty",
}

var guestNouns = []string{
	"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Fox", "Bear", "Lion",
	"Hawk", "Shark", "Dragon", "Phoenix", "Wizard", "Knight", "Ninja", "Pirate",
	"Ranger", "Sage", "Hero", "Champion", "Master", "Player",
}

// GenerateGuestName builds a display name like "CleverPanda42" for players
// who did not pick one.
func GenerateGuestName() string {
	adjective := guestAdjectives[mrand.IntN(len(guestAdjectives))]
	noun := guestNouns[mrand.IntN(len(guestNouns))]
	return adjective + noun + strconv.Itoa(mrand.IntN(100))
}

// newSessionID returns 32 random bytes hex-encoded, the opaque session
// identifier handed to the client.
func newSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // the platform CSPRNG never fails in practice
	}
	return hex.EncodeToString(b)
}
