package viewbuf

import "io"

// Encoder is the escaping policy applied to buffered text at drain
// time. Implementations must be pure functions of their input: no
// state may be carried between calls, so the same chunk always encodes
// to the same bytes regardless of what was drained before it.
type Encoder interface {
	// EncodeString writes s to w, escaped as required by the policy.
	EncodeString(w io.Writer, s string) error

	// EncodeBytes writes b to w, escaped as required by the policy.
	// It must not retain b.
	EncodeBytes(w io.Writer, b []byte) error
}

// DefaultEncoder is the policy used when a Writer or drain is given
// none: HTML content escaping.
var DefaultEncoder Encoder = HTMLEncoder{}

// HTMLEncoder escapes text for safe inclusion in HTML content.
// It converts the five HTML-special characters to their entity
// equivalents and writes everything else through unchanged, in spans,
// so clean text costs a single sink write.
type HTMLEncoder struct{}

// EncodeString implements Encoder.
func (HTMLEncoder) EncodeString(w io.Writer, s string) error {
	last := 0
	for i := 0; i < len(s); i++ {
		ent := htmlEntity(s[i])
		if ent == "" {
			continue
		}
		if last < i {
			if _, err := io.WriteString(w, s[last:i]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ent); err != nil {
			return err
		}
		last = i + 1
	}
	if last < len(s) {
		_, err := io.WriteString(w, s[last:])
		return err
	}
	return nil
}

// EncodeBytes implements Encoder.
func (HTMLEncoder) EncodeBytes(w io.Writer, b []byte) error {
	last := 0
	for i := 0; i < len(b); i++ {
		ent := htmlEntity(b[i])
		if ent == "" {
			continue
		}
		if last < i {
			if _, err := w.Write(b[last:i]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ent); err != nil {
			return err
		}
		last = i + 1
	}
	if last < len(b) {
		_, err := w.Write(b[last:])
		return err
	}
	return nil
}

// htmlEntity returns the entity for an HTML-special byte, or "" if the
// byte passes through unescaped.
func htmlEntity(c byte) string {
	switch c {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&#39;"
	}
	return ""
}

// PassthroughEncoder writes text unchanged. It is the policy for
// plain-text sinks and for reading buffered content back verbatim.
type PassthroughEncoder struct{}

// EncodeString implements Encoder.
func (PassthroughEncoder) EncodeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// EncodeBytes implements Encoder.
func (PassthroughEncoder) EncodeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
