package sandbox

import (
	"bytes"
	"io"
)

// frame accumulates one stream of shell output and finds the marker line
// that ends each command's output.
//
// A marker line is "\n<marker><tail>\n". The leading newline is injected by
// the protocol and is not part of the command's output. Bytes that could
// still be the start of a split marker are held back until more data
// arrives.
type frame struct {
	buf []byte
}

func (f *frame) feed(chunk []byte) {
	f.buf = append(f.buf, chunk...)
}

// scan writes everything known to precede the marker to w. When the whole
// marker line is buffered it returns the text following the marker on that
// line and keeps any later bytes for the next command.
func (f *frame) scan(needle []byte, w io.Writer) (string, bool, error) {
	i := bytes.Index(f.buf, needle)
	if i < 0 {
		keep := len(needle) - 1
		if n := len(f.buf) - keep; n > 0 {
			if err := f.flush(n, w); err != nil {
				return "", false, err
			}
		}
		return "", false, nil
	}

	if i > 0 {
		if err := f.flush(i, w); err != nil {
			return "", false, err
		}
	}

	rest := f.buf[len(needle):]
	j := bytes.IndexByte(rest, '\n')
	if j < 0 {
		return "", false, nil
	}

	tail := string(rest[:j])
	f.buf = append(f.buf[:0], rest[j+1:]...)
	return tail, true, nil
}

// flush writes the first n buffered bytes to w and drops them.
func (f *frame) flush(n int, w io.Writer) error {
	_, err := w.Write(f.buf[:n])
	f.buf = append(f.buf[:0], f.buf[n:]...)
	return err
}
