package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to os.Stdout and os.Stderr.
	Out    io.Writer
	ErrOut io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			_, err := fmt.Fprintln(f.out(), idGetter.GetID())
			return err
		}
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	if _, err := fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message); err != nil {
		return err
	}
	if suggestion != "" {
		if _, err := fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion); err != nil {
			return err
		}
	}
	return nil
}

// Printf writes human-readable output; it is silent in JSON and quiet modes.
func (f *OutputFormatter) Printf(format string, args ...any) {
	if f.JSON || f.Quiet {
		return
	}
	_, _ = fmt.Fprintf(f.out(), format, args...)
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.out(), s.String())
		return err
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}
