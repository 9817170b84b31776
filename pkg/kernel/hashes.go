package kernel

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // part of the fixed hash-code table below, not a new design choice
	"golang.org/x/crypto/sha3"
)

// Hash codes recognized by CryptoOps.Hash, the multihash table entries
// the kernel actually supports (a strict subset of the full registry).
const (
	HashSha2_256   uint64 = 0x12
	HashBlake2b256 uint64 = Blake2b256
	HashBlake2b512 uint64 = 0xb240
	HashKeccak256  uint64 = 0x1b
	HashRipemd160  uint64 = 0x1053
)

func newHasher(code uint64) (hash.Hash, *SyscallError) {
	switch code {
	case HashSha2_256:
		return sha256.New(), nil
	case HashBlake2b256:
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, syscallErr(ErrAssertionFailed, "constructing blake2b-256 hasher: %s", err)
		}
		return h, nil
	case HashBlake2b512:
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, syscallErr(ErrAssertionFailed, "constructing blake2b-512 hasher: %s", err)
		}
		return h, nil
	case HashKeccak256:
		return sha3.NewLegacyKeccak256(), nil
	case HashRipemd160:
		return ripemd160.New(), nil
	default:
		return nil, syscallErr(ErrIllegalArgument, "unsupported hash code %#x", code)
	}
}
