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

package test

import "sync"

// CompareWriter captures output so that it can be compared with an expected
// string. It is safe to write to from more than one goroutine.
type CompareWriter struct {
	mu     sync.Mutex
	buffer []byte
}

func (tw *CompareWriter) Write(p []byte) (n int, err error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.buffer = append(tw.buffer, p...)
	return len(p), nil
}

// Clear empties the buffer.
func (tw *CompareWriter) Clear() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.buffer = tw.buffer[:0]
}

// Compare buffered output with an expected string.
func (tw *CompareWriter) Compare(s string) bool {
	return s == tw.String()
}

// implements Stringer interface.
func (tw *CompareWriter) String() string {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return string(tw.buffer)
}
