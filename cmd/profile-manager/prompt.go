package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/profile-manager/internal/application"
)

// promptMissing asks for every empty field of req, reading answers line by
// line from in and writing prompts to out. Blank answers are re-asked; the
// engine itself never prompts, it receives a fully-populated request.
func promptMissing(in io.Reader, out io.Writer, req *application.AddProfileRequest) error {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Please enter a profile name", &req.Name},
		{"Please enter your access key", &req.AccessKey},
		{"Please enter your secret key", &req.SecretKey},
		{"Please enter the default region", &req.Region},
	}

	scanner := bufio.NewScanner(in)
	for _, f := range fields {
		for *f.dst == "" {
			fmt.Fprintf(out, "%s -> ", f.label)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return fmt.Errorf("input ended before a value was provided")
			}
			*f.dst = strings.TrimSpace(scanner.Text())
		}
	}

	return nil
}
