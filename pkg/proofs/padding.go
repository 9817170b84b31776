package proofs

import (
	"math/bits"

	"github.com/filecoin-project/go-state-types/abi"
)

// RequiredPadding computes the padded-piece filler pieces needed to align
// a sector after oldLength already-placed bytes with a newPieceLength
// piece, plus their sum. It mirrors the bit-decomposition the original
// unsealed-sector-CID assembly uses: the gap to fill, modulo the new
// piece's own alignment, decomposes uniquely into a sum of powers of two
// (each a legal padded-piece size), one per set bit.
func RequiredPadding(oldLength, newPieceLength abi.PaddedPieceSize) ([]abi.PaddedPieceSize, abi.PaddedPieceSize) {
	toFill := (-uint64(oldLength)) % uint64(newPieceLength)

	pads := make([]abi.PaddedPieceSize, 0, bits.OnesCount64(toFill))
	var sum uint64
	for toFill != 0 {
		pSize := uint64(1) << bits.TrailingZeros64(toFill)
		toFill ^= pSize

		padded := abi.PaddedPieceSize(pSize)
		pads = append(pads, padded)
		sum += pSize
	}
	return pads, abi.PaddedPieceSize(sum)
}
