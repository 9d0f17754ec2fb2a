package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
)

type printer struct {
	w      io.Writer
	pretty bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:      w,
		pretty: isTerminal(w),
	}
}

// printValue writes value, or the part of it selected by pick, as json.
func (p *printer) printValue(value json.RawMessage, pick string) error {
	if len(value) == 0 {
		value = json.RawMessage("null")
	}

	if pick != "" {
		res := gjson.GetBytes(value, pick)
		if !res.Exists() {
			return fmt.Errorf("path %q not found in value", pick)
		}
		value = json.RawMessage(res.Raw)
	}

	if p.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, value, "", "  "); err == nil {
			value = buf.Bytes()
		}
	}

	_, err := fmt.Fprintf(p.w, "%s\n", value)
	return err
}

// PrintError reports err on stderr, in red when stderr is a terminal.
func PrintError(err error) {
	msg := fmt.Sprintf("error: %v", err)
	if isTerminal(os.Stderr) {
		msg = color.Red.Sprint(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
