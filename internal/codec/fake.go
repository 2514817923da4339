package codec

// FakeWriter records register writes for test assertions.
type FakeWriter struct {
	// Writes contains every successful write in order.
	Writes []Register

	// FailAt, if > 0, makes the FailAt-th write (1-based) return WriteError.
	FailAt     int
	WriteError error

	calls int
}

// WriteRegister records the write.
func (f *FakeWriter) WriteRegister(addr, value byte) error {
	f.calls++
	if f.FailAt > 0 && f.calls == f.FailAt {
		return f.WriteError
	}
	f.Writes = append(f.Writes, Register{Addr: addr, Value: value})
	return nil
}

// FakeLine records levels written to a reset line.
type FakeLine struct {
	Values []int
}

// SetValue records v.
func (l *FakeLine) SetValue(v int) error {
	l.Values = append(l.Values, v)
	return nil
}
