package config

import "io"

// SetOutput redirects log output for tests
func (c *Logger) SetOutput(w io.Writer) {
	c.output = w
}
