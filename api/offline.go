package api

import (
	"crypto/md5"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/mrnavastar/mclauncher/util"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// OfflineUUID derives the id the game itself uses for offline players: a
// version 3 UUID over "OfflinePlayer:<name>".
func OfflineUUID(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = sum[6]&0x0f | 0x30
	sum[8] = sum[8]&0x3f | 0x80
	return uuid.UUID(sum).String()
}

func NewOfflineAccount(username string) (util.Account, error) {
	if !usernamePattern.MatchString(username) {
		return util.Account{}, fmt.Errorf("%w: %q is not a valid username (3-16 letters, digits or _)", util.ErrAuthentication, username)
	}
	return util.Account{
		Id:    OfflineUUID(username),
		Name:  username,
		Type:  util.AccountOffline,
		Skins: []util.Skin{},
		Capes: []util.Cape{},
	}, nil
}
