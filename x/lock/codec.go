package lock

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	discriminatorSize = 8
	keySize           = 32

	// recordOverhead is the size of every field but the description
	// area: discriminator, owner, beneficiary, optional asset id, amount,
	// unlock time, description length, spent flag and bump.
	recordOverhead = discriminatorSize + 2*keySize + 1 + keySize + 8 + 8 + 4 + 1 + 1
)

var lockDiscriminator = func() []byte {
	h := sha256.Sum256([]byte("account:Lock"))
	return h[:discriminatorSize]
}()

// RecordSize returns the size of a serialized lock whose description
// area holds up to capacity bytes.
func RecordSize(capacity int) int {
	return recordOverhead + capacity
}

func putBytes(dst, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += len(v)
}

func getBytes(src []byte, dst *[]byte, size int, offset *int) {
	*dst = append([]byte(nil), src[*offset:*offset+size]...)
	*offset += size
}

func putKey(dst, v []byte, offset *int) {
	copy(dst[*offset:*offset+keySize], v)
	*offset += keySize
}

func getKey(src []byte, dst *[]byte, offset *int) {
	getBytes(src, dst, keySize, offset)
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset++
}

func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset++
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}
