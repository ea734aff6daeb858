/*
Package hash contains SHA3-256 based hashing helpers: plain and
domain-separated digests and Merkle tree root calculation.
*/
package hash

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Size is the size of all digests in bytes.
const Size = 32

// Sha3 returns SHA3-256 digest of concatenated data.
func Sha3(data ...[]byte) [Size]byte {
	h := sha3.New256()
	for i := range data {
		_, _ = h.Write(data[i])
	}
	var res [Size]byte
	h.Sum(res[:0])
	return res
}

// Purpose returns SHA3-256 digest of data prefixed with the length-prefixed
// purpose string, digests for different purposes never collide.
func Purpose(purpose string, data ...[]byte) [Size]byte {
	h := sha3.New256()
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(purpose)))
	_, _ = h.Write(l[:])
	_, _ = h.Write([]byte(purpose))
	for i := range data {
		binary.LittleEndian.PutUint32(l[:], uint32(len(data[i])))
		_, _ = h.Write(l[:])
		_, _ = h.Write(data[i])
	}
	var res [Size]byte
	h.Sum(res[:0])
	return res
}

// CalcMerkleRoot calculates the Merkle root hash of the given leaves. The
// last node of an odd level is paired with itself, an empty set of leaves
// has a zero root.
func CalcMerkleRoot(leaves [][Size]byte) [Size]byte {
	if len(leaves) == 0 {
		return [Size]byte{}
	}
	level := make([][Size]byte, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		next := make([][Size]byte, (len(level)+1)/2)
		for i := range next {
			left := level[i*2]
			right := left
			if i*2+1 < len(level) {
				right = level[i*2+1]
			}
			next[i] = Sha3(left[:], right[:])
		}
		level = next
	}
	return level[0]
}
