package level

type Level int

const (
	Debug Level = iota + 1
	Info
	Warn
)

// unknown is not exported, so other packages cannot enumerate it.
const unknown Level = 0

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case unknown:
		return "UNKNOWN"
	}
	return "?"
}

// Notes are remarks kept per level.
type Notes []string

func (n Notes) Clone() Notes { return append(Notes(nil), n...) }
