package commands

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/oadr3/internal/constants"
)

// loadDocument reads a YAML or JSON mapping from path, or from in when path
// is "-".
func loadDocument(path string, in io.Reader) (map[string]interface{}, error) {
	if path == "" {
		return nil, constants.ErrFileRequired
	}

	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		// #nosec G304 -- the path is supplied by the user on purpose
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var document interface{}

	err = yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	mapping, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, constants.ErrDocumentNotObject)
	}

	return mapping, nil
}
