package ethutil

import (
	cid "github.com/ipfs/go-cid"
	mc "github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"
)

var rawPrefix = cid.Prefix{
	Version:  1,
	Codec:    uint64(mc.Raw),
	MhType:   mh.SHA2_256,
	MhLength: -1, // default length
}

// ContentCid derives the v1 content identifier of raw bytes, used for
// content-addressed storage keys.
func ContentCid(data []byte) (string, error) {
	c, err := rawPrefix.Sum(data)
	if err != nil {
		return "", err
	}

	return c.String(), nil
}

// IsValidCid reports whether s parses as an IPFS content identifier.
func IsValidCid(s string) bool {
	_, err := cid.Decode(s)
	return err == nil
}
