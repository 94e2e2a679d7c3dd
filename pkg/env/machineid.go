package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "morsetooth"

// UnitIDLength is the length of the ID derived from the machine ID.
const UnitIDLength = 12

// UnitID derives a stable ID for this unit from the machine ID without
// exposing it. It falls back to the hostname.
func UnitID() string {
	id, err := machineid.ProtectedID(appID)
	if err == nil && len(id) >= UnitIDLength {
		return id[:UnitIDLength]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return appID
}
