package zoo

import (
	"bufio"
	"fmt"
	"io"
)

// SectionMarker opens every load phase and every command.
const SectionMarker = "***********************************"

// Journal is the append-only activity log. It buffers writes and keeps
// the first write error; later writes after a failure are dropped.
type Journal struct {
	w     *bufio.Writer
	c     io.Closer
	err   error
	lines int
}

func NewJournal(w io.Writer) *Journal {
	j := &Journal{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		j.c = c
	}
	return j
}

// Println appends one line.
func (j *Journal) Println(line string) {
	if j.err != nil || j.w == nil {
		return
	}
	if _, err := j.w.WriteString(line + "\n"); err != nil {
		j.err = err
		return
	}
	j.lines++
}

func (j *Journal) Printf(format string, args ...any) {
	j.Println(fmt.Sprintf(format, args...))
}

// Lines appends each line in order.
func (j *Journal) Lines(lines []string) {
	for _, l := range lines {
		j.Println(l)
	}
}

// Section writes the marker followed by a ***title*** heading.
func (j *Journal) Section(title string) {
	j.Println(SectionMarker)
	j.Println("***" + title + "***")
}

// Count is the number of lines written so far.
func (j *Journal) Count() int { return j.lines }

func (j *Journal) Err() error { return j.err }

// Flush writes buffered lines to the underlying writer.
func (j *Journal) Flush() error {
	if j.w == nil {
		return j.err
	}
	if err := j.w.Flush(); err != nil && j.err == nil {
		j.err = err
	}
	return j.err
}

// Close flushes and closes the underlying writer if it is a Closer.
// Calling it more than once is a no-op after the first call.
func (j *Journal) Close() error {
	if j.w == nil {
		return j.err
	}
	j.Flush()
	j.w = nil
	if j.c != nil {
		if err := j.c.Close(); err != nil && j.err == nil {
			j.err = err
		}
	}
	return j.err
}
