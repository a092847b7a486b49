package core

// Entry is one message stored in the shared log.
type Entry struct {
	Author string
	Body   string
}

// String renders the entry the way chat windows display it.
func (e Entry) String() string {
	return "[" + e.Author + "]:\t" + e.Body
}
