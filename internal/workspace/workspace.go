// Package workspace holds the (virtual-desktop, monitor) cell: an ordered
// sequence of managed window handles, plus the indices selecting the active
// layout and variant for that cell. A Workspace owns no layouts itself; it
// only indexes into the per-monitor layout vector the dispatcher maintains.
package workspace

// Handle is an opaque, identity-compared window handle.
type Handle uint32

// Workspace is one (virtual-desktop, monitor) cell.
type Workspace struct {
	LayoutIdx  int
	VariantIdx int
	Handles    []Handle
}

// New creates an empty workspace using the given default layout index.
func New(defaultLayoutIdx, defaultVariantIdx int) *Workspace {
	return &Workspace{LayoutIdx: defaultLayoutIdx, VariantIdx: defaultVariantIdx}
}

// IndexOf returns the position of h in Handles, or -1 if absent.
func (w *Workspace) IndexOf(h Handle) int {
	for i, cur := range w.Handles {
		if cur == h {
			return i
		}
	}
	return -1
}

// InsertAt inserts h at idx, shifting existing handles at idx and beyond
// forward by one. idx may equal len(Handles) to append.
func (w *Workspace) InsertAt(idx int, h Handle) {
	w.Handles = append(w.Handles, 0)
	copy(w.Handles[idx+1:], w.Handles[idx:])
	w.Handles[idx] = h
}

// Append adds h to the end of the sequence and returns its new index.
func (w *Workspace) Append(h Handle) int {
	w.Handles = append(w.Handles, h)
	return len(w.Handles) - 1
}

// RemoveAt removes the handle at idx, shifting later handles back by one.
func (w *Workspace) RemoveAt(idx int) {
	w.Handles = append(w.Handles[:idx], w.Handles[idx+1:]...)
}

// Swap exchanges the handles at positions i and j.
func (w *Workspace) Swap(i, j int) {
	w.Handles[i], w.Handles[j] = w.Handles[j], w.Handles[i]
}

// Len returns the number of managed handles in the workspace.
func (w *Workspace) Len() int {
	return len(w.Handles)
}

// Empty reports whether the workspace has no managed handles.
func (w *Workspace) Empty() bool {
	return len(w.Handles) == 0
}
