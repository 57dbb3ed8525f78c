// This file is derived from Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the display adapter. There is only
// one log for the whole program and it is accessed through the package level
// functions.
//
// Consecutive entries with the same tag and detail are collapsed into a
// single entry with a repeat count. This matters for the presentation loop,
// which will report the same failure on every tick until the problem is
// resolved.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.Repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.Repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// maximum number of entries kept in the central log
const maxEntries = 256

type logger struct {
	mu      sync.Mutex
	entries []Entry
	echo    io.Writer
}

var central = &logger{}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// entries are single lines
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", " ")

	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].Repeated++
		l.entries[n-1].Timestamp = time.Now()
		return
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	l.entries = append(l.entries, e)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(tag, format string, args ...any) {
	central.log(tag, fmt.Sprintf(format, args...))
}

// Clear all entries from the central log.
func Clear() {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.entries = central.entries[:0]
}

// Write the contents of the central log to output.
func Write(output io.Writer) {
	Tail(output, maxEntries)
}

// Tail writes the last N entries to output.
func Tail(output io.Writer, number int) {
	central.mu.Lock()
	defer central.mu.Unlock()

	number = max(0, min(number, len(central.entries)))
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// Entries returns a copy of the current log.
func Entries() []Entry {
	central.mu.Lock()
	defer central.mu.Unlock()
	c := make([]Entry, len(central.entries))
	copy(c, central.entries)
	return c
}

// SetEcho prints new log entries to output as they are added. Repeats of the
// previous entry are not echoed. A nil writer turns echoing off.
func SetEcho(output io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.echo = output
}
