// FILE: lixenwraith/flags/master/credentials.go
package master

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/flags"
)

// Credential is one principal allowed to authenticate.
type Credential struct {
	Principal string
	Secret    string
}

// ReadCredentials loads the file named by --credentials. Each non-blank
// line holds exactly two whitespace-separated tokens: principal and secret.
// Every malformed line is reported, with its line number.
func ReadCredentials(path string) ([]Credential, error) {
	path = flags.NormalizePath(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("credentials path '%s' is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials '%s': %w", path, err)
	}
	return parseCredentials(path, data)
}

func parseCredentials(path string, data []byte) ([]Credential, error) {
	var creds []Credential
	var problems []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields := strings.Fields(scanner.Text())
		switch len(fields) {
		case 0:
			continue
		case 2:
			creds = append(creds, Credential{Principal: fields[0], Secret: fields[1]})
		default:
			problems = append(problems, fmt.Sprintf("%s:%d: want 'principal secret', got %d tokens", path, lineNo, len(fields)))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan credentials '%s': %w", path, err)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", flags.ErrFileFormat, strings.Join(problems, "; "))
	}
	return creds, nil
}

// InsecurePermissions reports whether the credentials file is readable by
// group or others.
func InsecurePermissions(path string) (bool, error) {
	info, err := os.Stat(flags.NormalizePath(path))
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0077 != 0, nil
}
