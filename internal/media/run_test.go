package media

import (
	"bytes"
	"testing"
)

func TestLastStderrLine(t *testing.T) {
	buf := bytes.NewBufferString("ffmpeg version 6.0\nbuilt with gcc\n\nInvalid data found when processing input\n\n")

	if got := lastStderrLine(buf); got != "Invalid data found when processing input" {
		t.Errorf("lastStderrLine = %q", got)
	}
}

func TestLastStderrLine_Empty(t *testing.T) {
	if got := lastStderrLine(&bytes.Buffer{}); got != "no diagnostic output" {
		t.Errorf("lastStderrLine = %q", got)
	}
}
