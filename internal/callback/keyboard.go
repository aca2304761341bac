package callback

type Button struct {
	Text    string
	Payload Payload
}

type Row []Button

// Keyboard is an inline keyboard described independently of the transport.
type Keyboard []Row

func (k Keyboard) Empty() bool {
	for _, row := range k {
		if len(row) > 0 {
			return false
		}
	}
	return true
}
