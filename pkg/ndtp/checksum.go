package ndtp

import "encoding/binary"

const (
	crc16Poly uint16 = 0x8005
	crc16Init uint16 = 0xFFFF
)

var crc16Table = makeCRC16Table(crc16Poly)

func makeCRC16Table(poly uint16) [256]uint16 {
	var table [256]uint16
	for i := range table {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// Checksum16 returns the CRC16 of data: polynomial 0x8005, initial value
// 0xFFFF, MSB first, no reflection and no final xor.
func Checksum16(data []byte) uint16 {
	crc := crc16Init
	for _, b := range data {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}

// AppendChecksum appends the big-endian CRC16 of data to data.
func AppendChecksum(data []byte) []byte {
	return binary.BigEndian.AppendUint16(data, Checksum16(data))
}

// VerifyChecksum recomputes the CRC16 over all bytes but the last two and
// compares it with the trailing big-endian value.
func VerifyChecksum(message []byte) (uint16, bool) {
	if len(message) < ChecksumSize {
		return 0, false
	}
	body := message[:len(message)-ChecksumSize]
	received := binary.BigEndian.Uint16(message[len(message)-ChecksumSize:])
	return received, Checksum16(body) == received
}
