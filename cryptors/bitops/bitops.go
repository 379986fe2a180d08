// bitops project bitops.go
package bitops

// NewSet returns a zeroed bit array large enough to hold n bits.
func NewSet(n int) []byte {
	return make([]byte, (n+7)>>3)
}

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= (1 << (bit & 7))
	return ary
}

func GetBit(ary []byte, bit uint) bool {
	return (ary[bit>>3]&(1<<(bit&7)) != 0)
}
