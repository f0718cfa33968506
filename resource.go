package rxopc

// Resource is the single-threaded OPC client the worker drives.
// Implementations do not need to be safe for concurrent use, the Client
// guarantees only its worker goroutine calls them and never two at a time.
type Resource interface {
	Init(host, server string) error
	ItemNames() ([]string, error)
	LocalServers() ([]string, error)

	ReadBool(item string) (bool, error)
	ReadFloat(item string) (float64, error)
	ReadInt(item string) (int64, error)
	ReadString(item string) (string, error)

	WriteBool(item string, value bool) error
	WriteFloat(item string, kind FloatKind, value float64) error
	WriteInt(item string, kind IntKind, value int64) error
	WriteString(item string, value string) error
}

// IntKind is the native integer variant used when writing an int item.
type IntKind string

const (
	IntI1 IntKind = "I1"
	IntI2 IntKind = "I2"
	IntI4 IntKind = "I4"
	IntI8 IntKind = "I8"
)

func (k IntKind) Valid() bool {
	switch k {
	case IntI1, IntI2, IntI4, IntI8:
		return true
	default:
		return false
	}
}

// Bits is the width of the variant, 0 if the kind is invalid.
func (k IntKind) Bits() int {
	switch k {
	case IntI1:
		return 8
	case IntI2:
		return 16
	case IntI4:
		return 32
	case IntI8:
		return 64
	default:
		return 0
	}
}

// FloatKind is the native floating point variant used when writing a float item.
type FloatKind string

const (
	FloatR4 FloatKind = "R4"
	FloatR8 FloatKind = "R8"
)

func (k FloatKind) Valid() bool {
	return k == FloatR4 || k == FloatR8
}
