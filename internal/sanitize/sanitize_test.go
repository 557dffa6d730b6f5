package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drops meta opener",
			in:   "Okay, here is the answer\n- Point one\n- Point two",
			want: "- Point one\n- Point two",
		},
		{
			name: "drops several narration lines",
			in:   "Let me check the context.\nBased on the documents:\n- 600 dpi\nIn summary, that's it.",
			want: "- 600 dpi",
		},
		{
			name: "drops blank lines",
			in:   "- one\n\n\n- two",
			want: "- one\n- two",
		},
		{
			name: "strips think blocks",
			in:   "<think>reasoning about scanners\nacross lines</think>- the answer",
			want: "- the answer",
		},
		{
			name: "clean answer passes through",
			in:   "- The ScanJet supports 600 dpi\n- Sources: brochure.pdf",
			want: "- The ScanJet supports 600 dpi\n- Sources: brochure.pdf",
		},
		{
			name: "trims surrounding whitespace",
			in:   "  \n- point\n  ",
			want: "- point",
		},
		{
			name: "everything filtered yields empty",
			in:   "Okay, let me think.\nI'll start now.",
			want: "",
		},
		{
			name: "known false positive on First as sentence text",
			in:   "First, press the power button\n- then scan",
			want: "- then scan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}
