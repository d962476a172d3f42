package znap

import (
	"fmt"
	"io"
)

// Dump writes the interval table to w, one line per interval.
func (tl *Timeline) Dump(w io.Writer) {
	mode := "clamped"
	if tl.looping {
		mode = "looping"
	}
	_, _ = fmt.Fprintf(w, "[znap] timeline: %d intervals | duration: %g | %s\n",
		len(tl.intervals), tl.duration, mode)
	for i := range tl.intervals {
		iv := &tl.intervals[i]
		label := ""
		if iv.Label != "" {
			label = fmt.Sprintf(" %q", iv.Label)
		}
		_, _ = fmt.Fprintf(w, "[znap] #%d%s [%g, %g) %s effective: %v\n",
			iv.Index, label, iv.Start, iv.End, iv.Mode, iv.Effective)
	}
}
