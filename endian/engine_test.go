package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestSection_IsLittleEndian(t *testing.T) {
	engine := Section()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())

	buf := GetBigEndianEngine().AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, buf)
}

func TestIsNativeLittleEndian(t *testing.T) {
	var v uint16 = 0x0102
	b := (*[2]byte)(unsafe.Pointer(&v))

	require.Equal(t, b[0] == 0x02, IsNativeLittleEndian())
}
