package common

import (
	"fmt"
	"path"
	"strings"

	"github.com/shaowenchen/unreal-mcp-server/pkg/cache"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

// Listings caches asset folder listings
type Listings = cache.Cache[result.Envelope]

const listingKeyPrefix = "list:"

// ListingKey identifies one folder listing
func ListingKey(folder string, recursive bool, classFilter string) string {
	return fmt.Sprintf("%s%s|r=%t|c=%s", listingKeyPrefix, folder, recursive, strings.ToLower(classFilter))
}

// InvalidateListings drops cached listings that may include the given asset
// paths: the listings of every ancestor folder and of the paths themselves.
// A nil cache is ignored.
func InvalidateListings(listings *Listings, paths ...string) int {
	if listings == nil {
		return 0
	}
	dropped := 0
	for _, p := range paths {
		dropped += listings.InvalidatePrefix(listingKeyPrefix + p)
		for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
			dropped += listings.InvalidatePrefix(listingKeyPrefix + dir + "|")
		}
	}
	return dropped
}
