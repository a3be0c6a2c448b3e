package accounts

import "encoding/binary"

func putActionID(dst []byte, actionID uint64) {
	binary.LittleEndian.PutUint64(dst, actionID)
}

func getActionID(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}
