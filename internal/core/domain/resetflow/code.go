package resetflow

const CodeLength = 6

// OtpCode is the 6-digit one-time code delivered to the staff member's email.
type OtpCode string

func (c OtpCode) IsValid() bool {
	if len(c) != CodeLength {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CodeEntry models the six single-digit slots of the OTP entry form together
// with the focused slot. Only ASCII digits mutate the slots; any other typed
// character is ignored silently.
type CodeEntry struct {
	slots [CodeLength]rune
	focus int
}

func NewCodeEntry() *CodeEntry {
	return &CodeEntry{}
}

func (e *CodeEntry) Focus() int {
	return e.focus
}

func (e *CodeEntry) Slot(i int) (rune, bool) {
	if i < 0 || i >= CodeLength {
		return 0, false
	}
	if e.slots[i] == 0 {
		return 0, false
	}
	return e.slots[i], true
}

// Type fills the focused slot with a digit and advances the focus, except on
// the last slot, which keeps the focus in place.
func (e *CodeEntry) Type(r rune) {
	if r < '0' || r > '9' {
		return
	}
	e.slots[e.focus] = r
	if e.focus < CodeLength-1 {
		e.focus++
	}
}

// Backspace clears the focused slot in place when it holds a digit; on an
// empty slot it moves the focus one slot back and clears that one instead.
func (e *CodeEntry) Backspace() {
	if e.slots[e.focus] != 0 {
		e.slots[e.focus] = 0
		return
	}
	if e.focus > 0 {
		e.focus--
		e.slots[e.focus] = 0
	}
}

func (e *CodeEntry) Left() {
	if e.focus > 0 {
		e.focus--
	}
}

func (e *CodeEntry) Right() {
	if e.focus < CodeLength-1 {
		e.focus++
	}
}

func (e *CodeEntry) Reset() {
	*e = CodeEntry{}
}

func (e *CodeEntry) IsComplete() bool {
	for _, r := range e.slots {
		if r == 0 {
			return false
		}
	}
	return true
}

// Code joins the slots into an OtpCode; ok is false until all six slots are
// filled.
func (e *CodeEntry) Code() (code OtpCode, ok bool) {
	if !e.IsComplete() {
		return "", false
	}
	return OtpCode(e.slots[:]), true
}
